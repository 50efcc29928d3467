package main

import (
	"context"

	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/spf13/cobra"
)

var inspectResume string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a résumé document and its layout",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectResume, "resume", "r", "", "Path or URL of resume.json (default from config)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument(context.Background(), resumeSource(inspectResume))
	if err != nil {
		return err
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintDocument(doc)
	p.PrintLayout(doc)
	return nil
}
