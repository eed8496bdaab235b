package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/pipeline"
	"github.com/jonathan/tailor-agent/internal/rendering"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Render English and German cover letters from a content file",
	Long: `Fill the cover letter templates with the applicant's details and the content proposed
in the input file. Letters are written to {output}/{company}_{position}/.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runCoverLetter,
}

var (
	coverConfigPath string
	coverInput      string
	coverLangs      string
	coverOutDir     string
	coverPDF        bool
)

func init() {
	coverLetterCmd.Flags().StringVar(&coverConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	coverLetterCmd.Flags().StringVarP(&coverInput, "input", "i", "", "Path to the cover letter content JSON (required)")
	coverLetterCmd.Flags().StringVar(&coverLangs, "lang", "", "Comma-separated languages to build: en, de (defaults to the config, or both)")
	coverLetterCmd.Flags().StringVarP(&coverOutDir, "out", "o", "", "Base output directory")
	coverLetterCmd.Flags().BoolVar(&coverPDF, "pdf", false, "Compile the letters with pdflatex")

	_ = coverLetterCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(coverConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = coverOutDir
	}

	merged := cfg.MergeWithDefaults(config.Config{
		CoverLetterTemplateEN: "templates/cover_letter_en.tex",
		CoverLetterTemplateDE: "templates/cover_letter_de.tex",
		OutputDir:             "output",
	})
	if merged.Applicant.FullName == "" {
		return fmt.Errorf("applicant full_name is required (via config file)")
	}

	langs, err := parseLanguages(coverLangs, merged)
	if err != nil {
		return err
	}
	templates := make(map[string]string, len(langs))
	for _, lang := range langs {
		if lang == rendering.LangGerman {
			templates[lang] = merged.CoverLetterTemplateDE
		} else {
			templates[lang] = merged.CoverLetterTemplateEN
		}
	}

	input, err := pipeline.LoadCoverLetterInput(coverInput)
	if err != nil {
		return err
	}

	letters, err := pipeline.BuildCoverLetters(context.Background(), pipeline.CoverLetterOptions{
		Input:      *input,
		Applicant:  merged.Applicant,
		Templates:  templates,
		OutputDir:  merged.OutputDir,
		CompilePDF: coverPDF,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Done! %d cover letter(s) generated\n", len(letters))
	return nil
}

// parseLanguages resolves --lang, falling back to the config's generate
// flags and then to both languages
func parseLanguages(flag string, cfg config.Config) ([]string, error) {
	if flag == "" {
		var langs []string
		if cfg.GenerateEnglish {
			langs = append(langs, rendering.LangEnglish)
		}
		if cfg.GenerateGerman {
			langs = append(langs, rendering.LangGerman)
		}
		if len(langs) == 0 {
			langs = []string{rendering.LangEnglish, rendering.LangGerman}
		}
		return langs, nil
	}

	var langs []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(flag, ",") {
		lang := strings.ToLower(strings.TrimSpace(part))
		if lang == "" || seen[lang] {
			continue
		}
		if lang != rendering.LangEnglish && lang != rendering.LangGerman {
			return nil, fmt.Errorf("unsupported language %q; use en or de", lang)
		}
		seen[lang] = true
		langs = append(langs, lang)
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("--lang must name at least one language")
	}
	return langs, nil
}
