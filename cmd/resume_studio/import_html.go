package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jonathan/resume-studio/internal/binding"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/loader"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/spf13/cobra"
)

var (
	importResume   string
	importOut      string
	importNoLayout bool
)

var importHTMLCmd = &cobra.Command{
	Use:   "import-html <page>",
	Short: "Fold a saved editor page back into a résumé document",
	Long: `Read an editor page saved from the browser (a file or URL), capture every bound
field and write the values into the base document. The section order shown on the
page replaces the base layout unless --no-layout is given. The base document supplies
the shape: the page must not address items the base does not have.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportHTML,
}

func init() {
	importHTMLCmd.Flags().StringVarP(&importResume, "resume", "r", "", "Base resume.json (default from config)")
	importHTMLCmd.Flags().StringVarP(&importOut, "out", "o", "", "Output JSON file (default stdout)")
	importHTMLCmd.Flags().BoolVar(&importNoLayout, "no-layout", false, "Keep the base document's layout")
	rootCmd.AddCommand(importHTMLCmd)
}

func runImportHTML(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := loadDocument(ctx, resumeSource(importResume))
	if err != nil {
		return err
	}

	page, err := loader.Read(ctx, args[0], loader.DefaultOptions())
	if err != nil {
		return err
	}

	nodes, err := binding.Scan(bytes.NewReader(page))
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no editable fields found in %s: save the page in editor mode", args[0])
	}
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintBindings(nodes)
	}

	edits, err := binding.ApplyAll(doc, nodes)
	if err != nil {
		return fmt.Errorf("failed to apply field %d of %d: %w", len(edits)+1, len(nodes), err)
	}

	if !importNoLayout {
		layout, ok, err := binding.ScanLayout(bytes.NewReader(page))
		if err != nil {
			return err
		}
		if ok {
			doc.Settings.Layout = layout
		}
	}

	data, err := export.MarshalDocument(doc)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, importOut, data); err != nil {
		return err
	}
	if importOut != "" && importOut != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d field(s) into %s\n", len(edits), importOut)
	}
	return nil
}
