package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/tailor-agent/internal/ingestion"
	"github.com/jonathan/tailor-agent/internal/keywords"
	"github.com/jonathan/tailor-agent/internal/observability"
)

var extractKeywordsCmd = &cobra.Command{
	Use:   "extract-keywords",
	Short: "Extract technical keywords from a job description",
	Long: `Read a job description from a text or HTML file, a URL, or stdin ("-") and print the
taxonomy keywords it mentions, grouped by category.`,
	RunE: runExtractKeywords,
}

var (
	extractJob    string
	extractOutDir string
	extractJSON   bool
)

func init() {
	extractKeywordsCmd.Flags().StringVarP(&extractJob, "job", "j", "", "Job description file, URL, or - for stdin (required)")
	extractKeywordsCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Also write the cleaned job description and its metadata to this directory")
	extractKeywordsCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the keyword set as JSON")

	_ = extractKeywordsCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(extractKeywordsCmd)
}

func runExtractKeywords(cmd *cobra.Command, _ []string) error {
	tax, err := loadTaxonomy(nil)
	if err != nil {
		return err
	}

	text, metadata, err := ingestion.Load(context.Background(), extractJob, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	if len(metadata.Flagged) > 0 {
		slog.Warn("job description contains instruction-like text", "matches", metadata.Flagged)
	}

	if extractOutDir != "" {
		if err := ingestion.WriteOutput(extractOutDir, text, metadata); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	set := keywords.NewExtractor(tax, nil).Extract(text)

	if extractJSON {
		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal keywords: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintKeywords(set)
	return nil
}
