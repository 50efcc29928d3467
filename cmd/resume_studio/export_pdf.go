package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	exportPDFResume  string
	exportPDFOut     string
	exportPDFChrome  string
	exportPDFTimeout time.Duration
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Print the résumé to PDF",
	Long: `Render the viewer page and print it through headless Chrome on A4 paper with
zero margins. Requires Chrome or Chromium to be installed.`,
	RunE: runExportPDF,
}

func init() {
	exportPDFCmd.Flags().StringVarP(&exportPDFResume, "resume", "r", "", "Path or URL of resume.json (default from config)")
	exportPDFCmd.Flags().StringVarP(&exportPDFOut, "out", "o", "resume.pdf", "Output PDF file")
	exportPDFCmd.Flags().StringVar(&exportPDFChrome, "chrome", "", "Chrome/Chromium binary (default from config, then PATH)")
	exportPDFCmd.Flags().DurationVar(&exportPDFTimeout, "timeout", 0, "Print timeout (default from config)")
	rootCmd.AddCommand(exportPDFCmd)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := loadDocument(ctx, resumeSource(exportPDFResume))
	if err != nil {
		return err
	}

	renderer, err := rendering.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	page, err := renderer.RenderString(doc, rendering.PageOptions{Mode: rendering.ModeViewer})
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	opts := export.PDFOptions{
		Timeout:  appConfig.Timeout(),
		ExecPath: appConfig.ChromePath,
		Verbose:  appConfig.Verbose,
	}
	if exportPDFChrome != "" {
		opts.ExecPath = exportPDFChrome
	}
	if exportPDFTimeout > 0 {
		opts.Timeout = exportPDFTimeout
	}

	pdf, err := export.PDF(ctx, page, opts)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, exportPDFOut, pdf); err != nil {
		return err
	}
	if exportPDFOut != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote PDF (%d bytes): %s\n", len(pdf), exportPDFOut)
	}
	return nil
}
