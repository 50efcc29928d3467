package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-studio/internal/loader"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/schemas"
	rootschemas "github.com/jonathan/resume-studio/schemas"
	"github.com/spf13/cobra"
)

var (
	validateJSON   string
	validateSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a résumé document",
	Long: `Validate a résumé document against the résumé JSON Schema and the document's
field rules. The embedded schema is used unless --schema names another file.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateJSON, "json", "j", "", "Path or URL of resume.json (default from config)")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file (default: embedded resume schema)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	source := resumeSource(validateJSON)
	data, err := loader.Read(context.Background(), source, loader.DefaultOptions())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := validateAgainstSchema(data); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			_, _ = fmt.Fprintf(out, "Validation failed: %s\n", source)
			for _, fe := range ve.Errors {
				_, _ = fmt.Fprintf(out, "  • %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("document does not match schema (%d field(s))", len(ve.Fields()))
		}
		return err
	}

	doc, err := loader.Decode(data, false)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			_, _ = fmt.Fprintf(out, "Validation failed: %s\n", source)
			for _, fe := range fieldErrs {
				_, _ = fmt.Fprintf(out, "  • %s: failed %q\n", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("document has %d invalid field(s)", len(fieldErrs))
		}
		return err
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", source)
	if appConfig.Verbose {
		observability.NewPrinter(out).PrintLayout(doc)
	}
	return nil
}

// validateAgainstSchema checks data against --schema when given, otherwise
// against the embedded résumé schema.
func validateAgainstSchema(data []byte) error {
	if validateSchema == "" {
		return schemas.ValidateBytes(rootschemas.Resume, data)
	}
	path := schemas.ResolveSchemaPath(validateSchema)
	if path == "" {
		path = validateSchema
	}
	return schemas.ValidateFile(path, data)
}
