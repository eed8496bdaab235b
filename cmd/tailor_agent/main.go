// Package main provides the entry point for the tailor_agent CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/tailor-agent/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tailor_agent",
	Short: "Surgical LaTeX resume tailoring",
	Long: `tailor_agent edits an existing LaTeX resume for a job description without rewriting it:
it extracts the job's keywords, suggests where they fit, checks proposed bullet edits
against the original facts, and splices accepted edits back into the document.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogger(verbose)
	},
}

var (
	verbose      bool
	taxonomyPath string
)

// Environment variables (also read from .env) that stand in for --config and --taxonomy
const (
	envConfigPath   = "TAILOR_AGENT_CONFIG"
	envTaxonomyPath = "TAILOR_AGENT_TAXONOMY"
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&taxonomyPath, "taxonomy", "", "Path to a YAML keyword taxonomy (default $"+envTaxonomyPath+", then the built-in one)")
}

// setupLogger routes slog output to stderr so stdout stays machine-readable
func setupLogger(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadTaxonomy returns the taxonomy named by --taxonomy or TAILOR_AGENT_TAXONOMY,
// or else the one from cfg
func loadTaxonomy(cfg *config.Config) (*config.Taxonomy, error) {
	path := taxonomyPath
	if path == "" {
		path = os.Getenv(envTaxonomyPath)
	}
	if path != "" {
		tax, err := config.LoadTaxonomy(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load taxonomy: %w", err)
		}
		return tax, nil
	}
	tax, err := cfg.ResolveTaxonomy()
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return tax, nil
}

// loadConfig reads and validates the JSON config at path, falling back to
// TAILOR_AGENT_CONFIG. With neither set it returns an empty config.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", path)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists; variables already set in the environment win
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
