package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/fieldpath"
	"github.com/jonathan/resume-studio/internal/loader"
	"github.com/jonathan/resume-studio/internal/schemas"
	rootschemas "github.com/jonathan/resume-studio/schemas"
	"github.com/spf13/cobra"
)

var (
	pathResume string
	setAsJSON  bool
	setOut     string
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value at a dotted path",
	Long: `Print the value at a dotted path such as "experience.0.bullets.1" or
"settings.layout.left". Strings are printed as-is; other values as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Write a value at a dotted path",
	Long: `Write a value at a dotted path and save the document. The value is stored as a
string unless --json is given. Intermediate members must already exist; a missing
final member of an object is created.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	for _, c := range []*cobra.Command{getCmd, setCmd} {
		c.Flags().StringVarP(&pathResume, "resume", "r", "", "Path of resume.json (default from config)")
		rootCmd.AddCommand(c)
	}
	setCmd.Flags().BoolVar(&setAsJSON, "json", false, "Parse the value as JSON")
	setCmd.Flags().StringVarP(&setOut, "out", "o", "", "Write to this file instead of updating the document in place")
}

// readTree decodes the document as a raw JSON tree, keeping numbers as written.
func readTree(source string) (any, error) {
	data, err := loader.Read(context.Background(), source, loader.DefaultOptions())
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, &loader.Error{Source: source, Message: "invalid document", Cause: err}
	}
	return tree, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	tree, err := readTree(resumeSource(pathResume))
	if err != nil {
		return err
	}

	v, err := fieldpath.Read(tree, args[0])
	if err != nil {
		return err
	}

	if s, ok := v.(string); ok {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	}
	data, err := export.MarshalIndented(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runSet(cmd *cobra.Command, args []string) error {
	source := resumeSource(pathResume)
	if loader.IsURL(source) && setOut == "" {
		return fmt.Errorf("cannot update %s in place: use --out", source)
	}

	tree, err := readTree(source)
	if err != nil {
		return err
	}

	var value any = args[1]
	if setAsJSON {
		dec := json.NewDecoder(bytes.NewReader([]byte(args[1])))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value is not valid JSON: %w", err)
		}
	}

	if err := fieldpath.Write(tree, args[0], value); err != nil {
		return err
	}

	data, err := export.MarshalIndented(tree)
	if err != nil {
		return err
	}
	if appConfig.Strict {
		if err := schemas.ValidateBytes(rootschemas.Resume, data); err != nil {
			return fmt.Errorf("refusing to save: %w", err)
		}
	}

	dest := setOut
	if dest == "" {
		dest = source
	}
	if err := loader.WriteFile(dest, data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s\n", args[0], dest)
	return nil
}
