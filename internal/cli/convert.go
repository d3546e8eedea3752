package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeanMoon1/Phoenix-sub001/internal/convert"
	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
)

// ConvertSummary is the JSON payload of a successful convert.
type ConvertSummary struct {
	Input         string      `json:"input"`
	Dialect       string      `json:"dialect"`
	Files         OutputFiles `json:"files"`
	ScenarioCodes []string    `json:"scenarioCodes"`
	Statistics    ir.Stats    `json:"statistics"`
	Fingerprint   string      `json:"fingerprint"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert one scenario file to SQL",
		Long: `Convert one scenario event file into an insert script and a
rollback script.

The rollback script is written next to the output as <output>_rollback.sql.
With --verbose a statistics file <output>_stats.json is written as well.

Example:
  phoenix-scenario convert fire_training_scenario.json -o fire.sql --batch
  phoenix-scenario convert flood.yaml --seed 12345 --dialect portable`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	addCompileFlags(cmd, opts)

	return cmd
}

func runConvert(opts *CompileOptions, input string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)
	log := formatter.Log()
	defer func() { _ = log.Sync() }()

	if err := opts.resolve(cmd); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
	}

	events, err := LoadEvents(input)
	if err != nil {
		loadErr := asLoadError(err)
		return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, loadErr.Details())
	}
	log.Debug("Loaded events", zap.String("file", input), zap.Int("events", len(events)))

	result, err := opts.newConverter(log).Convert(events, convert.RunOptions{})
	if err != nil {
		return formatter.Fail(ExitCommandError, conversionErrorCode(err), err.Error(), nil)
	}

	gen := opts.newGenerator()
	scripts, err := opts.render(gen, result)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGenerateFailed, err.Error(), nil)
	}

	files := outputFiles(opts.outputPath(defaultOutputName(input)), opts.Verbose)
	var report *RunReport
	if opts.Verbose {
		report = newRunReport(time.Now(), result, []FileResult{succeeded(input, result)})
		if opts.seedSet {
			report.Seed = &opts.Seed
		}
	}
	if err := writeOutputs(files, scripts, report); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}

	summary := ConvertSummary{
		Input:         input,
		Dialect:       string(gen.Dialect()),
		Files:         files,
		ScenarioCodes: result.ScenarioCodes(),
		Statistics:    convert.GenerateStatistics(result),
		Fingerprint:   ir.MustFingerprint(result),
	}
	log.Info("Wrote scripts",
		zap.String("sql", files.SQL),
		zap.String("rollback", files.Rollback),
		zap.String("fingerprint", summary.Fingerprint))

	return outputConvertSuccess(formatter, summary)
}

// defaultOutputName derives "<input base>.sql" from an input path.
func defaultOutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".sql"
}

func outputConvertSuccess(formatter *OutputFormatter, s ConvertSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(s)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Converted %s: %d scenario(s), %d scene(s), %d option(s)\n",
		s.Input, s.Statistics.ScenarioCount, s.Statistics.SceneCount, s.Statistics.OptionCount)
	if len(s.ScenarioCodes) > 0 {
		fmt.Fprintf(w, "  Scenarios: %s\n", strings.Join(s.ScenarioCodes, ", "))
	}
	fmt.Fprintf(w, "  SQL:       %s\n", s.Files.SQL)
	fmt.Fprintf(w, "  Rollback:  %s\n", s.Files.Rollback)
	if s.Files.Stats != "" {
		fmt.Fprintf(w, "  Stats:     %s\n", s.Files.Stats)
	}
	return nil
}
