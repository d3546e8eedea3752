package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeanMoon1/Phoenix-sub001/internal/convert"
	"github.com/SeanMoon1/Phoenix-sub001/internal/sqlgen"
	"github.com/SeanMoon1/Phoenix-sub001/internal/store"
)

// VerifyResult is the JSON payload of a successful verify.
type VerifyResult struct {
	Input    string              `json:"input"`
	Expected map[string]int      `json:"expected"`
	Report   *store.DryRunReport `json:"report"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <input>",
		Short: "Dry-run the generated scripts against a scratch database",
		Long: `Convert a scenario file, apply the insert script to an in-memory
SQLite database with the target schema, check the loaded row counts, then
apply the rollback script and check that every row is gone.

The scripts are rendered in the portable dialect whatever --dialect says,
because the mysql dialect relies on session variables SQLite lacks. No
files are written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	addCompileFlags(cmd, opts)

	return cmd
}

func runVerify(opts *CompileOptions, input string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)
	log := formatter.Log()
	defer func() { _ = log.Sync() }()

	if err := opts.resolve(cmd); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
	}
	opts.dialect = sqlgen.DialectPortable

	events, err := LoadEvents(input)
	if err != nil {
		loadErr := asLoadError(err)
		return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, loadErr.Details())
	}

	result, err := opts.newConverter(log).Convert(events, convert.RunOptions{})
	if err != nil {
		return formatter.Fail(ExitCommandError, conversionErrorCode(err), err.Error(), nil)
	}
	scripts, err := opts.render(opts.newGenerator(), result)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGenerateFailed, err.Error(), nil)
	}

	report, err := store.DryRun(cmd.Context(), scripts.SQL, scripts.Rollback)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDryRunFailed, err.Error(), nil)
	}
	log.Debug("Dry run complete",
		zap.Any("loaded", report.Loaded),
		zap.Any("remaining", report.Remaining))

	expected := map[string]int{
		sqlgen.TableScenario: len(result.Scenarios),
		sqlgen.TableScene:    len(result.Scenes),
		sqlgen.TableOption:   len(result.Options),
	}
	for table, want := range expected {
		if got := report.Loaded[table]; got != want {
			return formatter.Fail(ExitFailure, ErrCodeRowCountMismatch,
				fmt.Sprintf("%s: loaded %d row(s), expected %d", table, got, want), report)
		}
	}
	if !report.Clean() {
		return formatter.Fail(ExitFailure, ErrCodeRollbackDirty,
			fmt.Sprintf("rollback left rows behind: %v", report.Remaining), report)
	}

	res := VerifyResult{Input: input, Expected: expected, Report: report}
	if formatter.Format == "json" {
		return formatter.Success(res)
	}
	fmt.Fprintf(formatter.Writer, "✓ %s: loaded %d scenario(s), %d scene(s), %d option(s); rollback clean\n",
		input, expected[sqlgen.TableScenario], expected[sqlgen.TableScene], expected[sqlgen.TableOption])
	return nil
}
