package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-studio/internal/loader"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var (
	initOut   string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample résumé document",
	Long:  "Writes a complete sample document to start editing from. An existing file is kept unless --force is given.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initOut, "out", "o", "", "Output file (default from config)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := resumeSource(initOut)
	if loader.IsURL(path) {
		return fmt.Errorf("cannot write to %s", path)
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := loader.Save(path, types.SampleDocument()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample document: %s\n", path)
	return nil
}
