// Package main provides the entry point for the resume studio: a renderer
// and in-browser editor for résumé JSON documents.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/loader"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "Render and edit résumé JSON documents",
	Long: "Resume Studio renders a résumé JSON document as an HTML page and serves an editor " +
		"where every field is edited in place, sections are reordered and the result is exported as JSON or PDF.",
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

var (
	configFile string
	verbose    bool

	// appConfig is the merged configuration: defaults, then the config file,
	// then RESUME_STUDIO_* variables. Command flags are applied on top.
	appConfig config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func loadAppConfig(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.FromEnv(); err != nil {
		return err
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if verbose {
		merged.Verbose = true
	}
	if err := merged.Validate(); err != nil {
		return err
	}

	appConfig = merged
	return nil
}

// resumeSource returns the flag value, or the configured document.
func resumeSource(flag string) string {
	if flag != "" {
		return flag
	}
	return appConfig.Resume
}

// loadDocument loads the document at source with the configured strictness.
func loadDocument(ctx context.Context, source string) (*types.Document, error) {
	opts := loader.DefaultOptions()
	opts.Strict = appConfig.Strict
	return loader.Load(ctx, source, opts)
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := loader.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
