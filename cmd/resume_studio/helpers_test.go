package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-studio/internal/loader"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the CLI in-process with args and returns everything it
// printed. Flag values are reset first since they live in package variables.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeSample saves doc (the sample document when nil) in a temp directory
// and returns its path.
func writeSample(t *testing.T, doc *types.Document) string {
	t.Helper()
	if doc == nil {
		doc = types.SampleDocument()
	}
	path := filepath.Join(t.TempDir(), "resume.json")
	if err := loader.Save(path, doc); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	return path
}
