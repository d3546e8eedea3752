package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeanMoon1/Phoenix-sub001/internal/content"
	"github.com/SeanMoon1/Phoenix-sub001/internal/schema"
)

// ValidationIssue is one problem found in an event file.
type ValidationIssue struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input>...",
		Short: "Check scenario files without converting them",
		Long: `Check scenario event files against the event schema.

Conversion itself accepts any well-formed file and fills in defaults;
validate reports what conversion would silently tolerate: missing scene
ids, negative experience points, scene orders below one, and a scene id
used twice within one scenario.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, inputs []string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)
	log := formatter.Log()
	defer func() { _ = log.Sync() }()

	checker, err := schema.NewChecker()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	var issues []ValidationIssue
	for _, input := range inputs {
		log.Debug("Validating file", zap.String("file", input))
		fileIssues, loadErr := ValidateFile(checker, input)
		if loadErr != nil {
			return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, loadErr.Details())
		}
		issues = append(issues, fileIssues...)
	}

	if len(issues) > 0 {
		return outputValidationErrors(formatter, len(inputs), issues)
	}
	return outputValidateSuccess(formatter, len(inputs))
}

// ValidateFile checks one event file. A non-nil LoadError means the file
// could not be read or parsed at all.
func ValidateFile(checker *schema.Checker, path string) ([]ValidationIssue, *LoadError) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input not found: %s", path), File: path}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error(), File: path}
	}

	format := content.FormatForPath(path)
	events, err := content.Decode(data, format)
	if err != nil {
		var parseErr *content.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: parseErr.Error(), File: path, Line: parseErr.Line}
		}
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), File: path}
	}

	violations, err := checker.Check(path, data, format)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), File: path}
	}

	var issues []ValidationIssue
	for _, v := range violations {
		issues = append(issues, issueFrom(path, ErrCodeSchema, v))
	}
	for _, v := range schema.CheckEvents(events) {
		issues = append(issues, issueFrom(path, ErrCodeDuplicateScene, v))
	}
	return issues, nil
}

func issueFrom(file, code string, v schema.Violation) ValidationIssue {
	return ValidationIssue{File: file, Code: code, Path: v.Path, Message: v.Message, Line: v.Line}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, files int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Files: files})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d file(s) valid\n", files)
	return nil
}

// outputValidationErrors outputs every issue found.
func outputValidationErrors(formatter *OutputFormatter, files int, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Files: files, Errors: issues},
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Invalid content is a validation failure, not a command error.
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", issue.File, issue.Line)
		} else {
			fmt.Fprintf(formatter.Writer, "%s\n", issue.File)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", issue.Code, issue.Path, issue.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
