package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	renderResume string
	renderMode   string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the résumé as an HTML page",
	Long: `Render the résumé document as a standalone HTML page. Viewer mode produces
the read-only page; editor mode tags every field for in-place editing.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderResume, "resume", "r", "", "Path or URL of resume.json (default from config)")
	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", "viewer", "Page mode: viewer or editor")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output HTML file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func parseMode(s string) (rendering.Mode, error) {
	switch strings.ToLower(s) {
	case "viewer", "view", "":
		return rendering.ModeViewer, nil
	case "editor", "edit":
		return rendering.ModeEditor, nil
	}
	return rendering.ModeViewer, fmt.Errorf("invalid mode %q: must be viewer or editor", s)
}

func runRender(cmd *cobra.Command, _ []string) error {
	mode, err := parseMode(renderMode)
	if err != nil {
		return err
	}

	doc, err := loadDocument(context.Background(), resumeSource(renderResume))
	if err != nil {
		return err
	}

	renderer, err := rendering.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	var page strings.Builder
	cols, err := renderer.RenderPage(&page, doc, rendering.PageOptions{Mode: mode})
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRenderFailures(cols.Failed)
	}

	if err := writeOutput(cmd, renderOut, []byte(page.String())); err != nil {
		return err
	}
	if renderOut != "" && renderOut != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s page: %s\n", mode, renderOut)
	}
	return nil
}
