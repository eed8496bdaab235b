package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/tailor-agent/internal/observability"
	"github.com/jonathan/tailor-agent/internal/pipeline"
)

var validateBulletsCmd = &cobra.Command{
	Use:   "validate-bullets",
	Short: "Check tailored bullets against their originals",
	Long: `Validate every bullet of a tailoring request: numbers and organization names must be kept,
and no more than a quarter of the original's significant words may be dropped.
Exits with an error when any bullet fails.`,
	RunE: runValidateBullets,
}

var validateRequestPath string

func init() {
	validateBulletsCmd.Flags().StringVarP(&validateRequestPath, "request", "i", "", "Path to the tailoring request JSON (required)")

	_ = validateBulletsCmd.MarkFlagRequired("request")

	rootCmd.AddCommand(validateBulletsCmd)
}

func runValidateBullets(_ *cobra.Command, _ []string) error {
	tax, err := loadTaxonomy(nil)
	if err != nil {
		return err
	}

	req, err := pipeline.LoadTailorRequest(validateRequestPath)
	if err != nil {
		return err
	}

	results := pipeline.CheckBullets(tax, req)
	observability.NewPrinter(os.Stdout).PrintValidationResults(results)

	failed := 0
	for _, r := range results {
		if !r.Valid {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d bullets failed validation", failed, len(results))
	}

	_, _ = fmt.Fprintf(os.Stdout, "All %d bullets passed validation\n", len(results))
	return nil
}
