package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/tailor-agent/internal/observability"
	"github.com/jonathan/tailor-agent/internal/parsing"
	"github.com/jonathan/tailor-agent/internal/rendering"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a LaTeX resume into its sections and bullets",
	Long:  "Parse the experience, project, hackathon and skills sections of a LaTeX resume and print them as JSON.",
	RunE:  runParseResume,
}

var parseResumePath string

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumePath, "resume", "r", "", "Path to the LaTeX resume (required)")

	_ = parseResumeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(_ *cobra.Command, _ []string) error {
	tax, err := loadTaxonomy(nil)
	if err != nil {
		return err
	}

	doc, err := rendering.LoadTemplate(parseResumePath)
	if err != nil {
		return err
	}

	resume := parsing.NewParser(tax.Layout, nil).Parse(doc)
	if verbose {
		observability.NewPrinter(os.Stdout).PrintParsedResume(resume)
	}

	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(data))
	return nil
}
