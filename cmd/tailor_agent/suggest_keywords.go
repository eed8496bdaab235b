package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/tailor-agent/internal/observability"
	"github.com/jonathan/tailor-agent/internal/pipeline"
)

var suggestKeywordsCmd = &cobra.Command{
	Use:   "suggest-keywords",
	Short: "Suggest job keywords that each resume section can safely mention",
	Long: `Extract the job description's keywords, parse the resume, and print, per section,
the keywords implied by technologies the section already uses.`,
	RunE: runSuggestKeywords,
}

var (
	suggestResume string
	suggestJob    string
	suggestJSON   bool
)

func init() {
	suggestKeywordsCmd.Flags().StringVarP(&suggestResume, "resume", "r", "", "Path to the LaTeX resume (required)")
	suggestKeywordsCmd.Flags().StringVarP(&suggestJob, "job", "j", "", "Job description file, URL, or - for stdin (required)")
	suggestKeywordsCmd.Flags().BoolVar(&suggestJSON, "json", false, "Print the suggestions as JSON")

	_ = suggestKeywordsCmd.MarkFlagRequired("resume")
	_ = suggestKeywordsCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(suggestKeywordsCmd)
}

func runSuggestKeywords(cmd *cobra.Command, _ []string) error {
	tax, err := loadTaxonomy(nil)
	if err != nil {
		return err
	}

	result, err := pipeline.Tailor(context.Background(), pipeline.TailorOptions{
		ResumePath: suggestResume,
		JobSource:  suggestJob,
		Taxonomy:   tax,
		Stdin:      cmd.InOrStdin(),
		Out:        io.Discard,
	})
	if err != nil {
		return err
	}

	if suggestJSON {
		data, err := json.MarshalIndent(result.Suggestions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal suggestions: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	if verbose && result.Keywords != nil {
		printer.PrintKeywords(*result.Keywords)
	}
	printer.PrintMapping(result.Suggestions)
	return nil
}
