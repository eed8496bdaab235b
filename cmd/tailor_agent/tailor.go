package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/pipeline"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Apply a tailoring request to a LaTeX resume",
	Long: `Parse the resume, optionally analyze a job description, validate every tailored bullet,
and splice the accepted bullets and skills block into a copy of the resume.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runTailor,
}

var (
	tailorConfigPath string
	tailorResume     string
	tailorJob        string
	tailorRequest    string
	tailorOutDir     string
	tailorName       string
	tailorPDF        bool
	tailorMaxPages   int
)

func init() {
	tailorCmd.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	tailorCmd.Flags().StringVarP(&tailorResume, "resume", "r", "", "Path to the LaTeX resume")
	tailorCmd.Flags().StringVarP(&tailorJob, "job", "j", "", "Job description file, URL, or - for stdin (optional)")
	tailorCmd.Flags().StringVarP(&tailorRequest, "request", "i", "", "Path to the tailoring request JSON")
	tailorCmd.Flags().StringVarP(&tailorOutDir, "out", "o", "", "Output directory")
	tailorCmd.Flags().StringVar(&tailorName, "name-for-files", "", "Prefix of generated file names")
	tailorCmd.Flags().BoolVar(&tailorPDF, "pdf", false, "Compile the tailored resume with pdflatex")
	tailorCmd.Flags().IntVar(&tailorMaxPages, "max-pages", 1, "Warn when the compiled resume exceeds this many pages (0 disables)")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(tailorConfigPath)
	if err != nil {
		return err
	}

	// CLI flags override config file values
	if cmd.Flags().Changed("resume") {
		cfg.ResumeTemplate = tailorResume
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = tailorOutDir
	}
	if cmd.Flags().Changed("name-for-files") {
		cfg.Applicant.NameForFiles = tailorName
	}

	merged := cfg.MergeWithDefaults(config.Config{
		ResumeTemplate: "templates/resume.tex",
		OutputDir:      "output",
	})
	if tailorRequest == "" && tailorJob == "" {
		return fmt.Errorf("at least one of --request or --job must be provided")
	}

	tax, err := loadTaxonomy(&merged)
	if err != nil {
		return err
	}

	_, err = pipeline.Tailor(context.Background(), pipeline.TailorOptions{
		ResumePath:   merged.ResumeTemplate,
		JobSource:    tailorJob,
		RequestPath:  tailorRequest,
		OutputDir:    merged.OutputDir,
		NameForFiles: merged.Applicant.NameForFiles,
		CompilePDF:   tailorPDF,
		MaxPages:     tailorMaxPages,
		Verbose:      verbose || merged.Verbose,
		Taxonomy:     tax,
		Stdin:        cmd.InOrStdin(),
	})
	return err
}
