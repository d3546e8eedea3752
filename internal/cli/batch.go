package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/SeanMoon1/Phoenix-sub001/internal/convert"
	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
)

// DefaultBatchFiles is the scenario set converted when no manifest is
// given, one file per disaster type.
var DefaultBatchFiles = []string{
	"fire_training_scenario.json",
	"earthquake_training_scenario.json",
	"emergency_first_aid_scenario.json",
	"traffic_accident_scenario.json",
	"flood_disaster_scenario.json",
	"complex_disaster_scenario.json",
}

// DefaultBatchOutput is the merged script name used when --output is not
// given.
const DefaultBatchOutput = "all_scenarios.sql"

// Manifest lists the files of a batch run.
type Manifest struct {
	// Output overrides the merged SQL path. Relative paths are resolved
	// against the output directory.
	Output string   `yaml:"output"`
	Files  []string `yaml:"files"`
}

// LoadManifest reads a batch manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Files) == 0 {
		return nil, fmt.Errorf("manifest %s lists no files", path)
	}
	return &m, nil
}

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	CompileOptions
	Manifest string
	All      bool
}

// BatchSummary is the JSON payload of a batch run.
type BatchSummary struct {
	InputDir string      `json:"inputDir"`
	Dialect  string      `json:"dialect"`
	Files    OutputFiles `json:"files"`
	Report   *RunReport  `json:"report"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{CompileOptions: CompileOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Convert a set of scenario files into one script",
		Long: `Convert every scenario file of a set into one merged insert script
and one merged rollback script.

The set is the standard file per disaster type unless --manifest names a
YAML manifest or --all selects every event file in the directory. A file
that cannot be converted is reported and skipped; the others are still
written.

Exit codes: 0 all files converted, 1 some files failed, 2 no file converted.

Example:
  phoenix-scenario batch ./scenarios --batch -v
  phoenix-scenario batch ./scenarios --manifest release.yaml --seed 7`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	addCompileFlags(cmd, &opts.CompileOptions)
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "YAML manifest listing the files to convert")
	cmd.Flags().BoolVar(&opts.All, "all", false, "convert every .json/.yaml file in the directory")
	cmd.MarkFlagsMutuallyExclusive("manifest", "all")

	return cmd
}

func runBatch(opts *BatchOptions, inputDir string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)
	log := formatter.Log()
	defer func() { _ = log.Sync() }()

	if err := opts.resolve(cmd); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
	}

	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("input directory not found: %s", inputDir), nil)
	}

	names, output, err := opts.fileSet(inputDir)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeManifest, err.Error(), nil)
	}
	if len(names) == 0 {
		return formatter.Fail(ExitCommandError, ErrCodeNoFiles, fmt.Sprintf("no event files found in %s", inputDir), nil)
	}

	conv := opts.newConverter(log)
	gen := opts.newGenerator()

	merged := &ir.Result{}
	owners := make(map[string]string) // scenario code -> file
	results := make([]FileResult, 0, len(names))
	for _, name := range names {
		path := filepath.Join(inputDir, name)
		res := convertBatchFile(conv, path, owners)
		if !res.result.Success {
			log.Warn("Skipping file", zap.String("file", path), zap.String("error", res.result.Error))
			results = append(results, res.result)
			continue
		}
		if _, err := gen.GenerateSQL(res.records); err != nil {
			results = append(results, failed(path, ErrCodeGenerateFailed, err.Error()))
			continue
		}
		for _, code := range res.records.ScenarioCodes() {
			owners[code] = path
		}
		merged.Merge(res.records)
		results = append(results, res.result)
		log.Debug("Converted file", zap.String("file", path), zap.Int("scenarios", res.result.Scenarios))
	}

	report := newRunReport(time.Now(), merged, results)
	if opts.seedSet {
		report.Seed = &opts.Seed
	}

	if report.SuccessfulFiles == 0 {
		_ = formatter.Error(ErrCodeBatchFailed, fmt.Sprintf("no file converted (%d failed)", report.FailedFiles), report)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: all %d file(s) failed", ErrCodeBatchFailed, report.FailedFiles))
	}

	scripts, err := opts.render(gen, merged)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGenerateFailed, err.Error(), nil)
	}
	files := outputFiles(output, opts.Verbose)
	if err := writeOutputs(files, scripts, report); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}

	summary := BatchSummary{InputDir: inputDir, Dialect: string(gen.Dialect()), Files: files, Report: report}
	if err := outputBatchSummary(formatter, summary); err != nil {
		return err
	}

	if report.FailedFiles > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d of %d file(s) failed", ErrCodeBatchFailed, report.FailedFiles, report.TotalFiles))
	}
	return nil
}

// fileSet returns the file names to convert and the merged output path.
func (o *BatchOptions) fileSet(inputDir string) ([]string, string, error) {
	output := o.outputPath(DefaultBatchOutput)

	switch {
	case o.Manifest != "":
		m, err := LoadManifest(o.Manifest)
		if err != nil {
			return nil, "", err
		}
		if m.Output != "" && o.Output == "" {
			output = m.Output
			if !filepath.IsAbs(output) {
				output = filepath.Join(o.config().OutputDir, output)
			}
		}
		return m.Files, output, nil
	case o.All:
		names, err := FindEventFiles(inputDir)
		if err != nil {
			return nil, "", fmt.Errorf("scan %s: %w", inputDir, err)
		}
		return names, output, nil
	default:
		return DefaultBatchFiles, output, nil
	}
}

type batchFile struct {
	result  FileResult
	records *ir.Result
}

// convertBatchFile loads and converts one file. Authored scenario codes
// already taken by an earlier file fail the later file.
func convertBatchFile(conv *convert.Converter, path string, owners map[string]string) batchFile {
	events, err := LoadEvents(path)
	if err != nil {
		loadErr := asLoadError(err)
		return batchFile{result: failed(path, loadErr.Code, loadErr.Message)}
	}

	records, err := conv.Convert(events, convert.RunOptions{})
	if err != nil {
		return batchFile{result: failed(path, conversionErrorCode(err), err.Error())}
	}

	for _, code := range records.ScenarioCodes() {
		if owner, taken := owners[code]; taken {
			return batchFile{result: failed(path, ErrCodeConvertFailed,
				fmt.Sprintf("scenario code %s already defined in %s", code, owner))}
		}
	}
	return batchFile{result: succeeded(path, records), records: records}
}

func outputBatchSummary(formatter *OutputFormatter, s BatchSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(s)
	}

	w := formatter.Writer
	r := s.Report
	mark := "✓"
	if r.FailedFiles > 0 {
		mark = "!"
	}
	fmt.Fprintf(w, "%s Converted %d of %d file(s): %d scenario(s), %d scene(s), %d option(s)\n\n",
		mark, r.SuccessfulFiles, r.TotalFiles, r.TotalScenarios, r.TotalScenes, r.TotalOptions)

	for _, f := range r.Results {
		if f.Success {
			fmt.Fprintf(w, "  ✓ %s: %d scenario(s), %d scene(s), %d option(s)\n", f.File, f.Scenarios, f.Scenes, f.Options)
		} else {
			fmt.Fprintf(w, "  ✗ %s: [%s] %s\n", f.File, f.ErrorCode, f.Error)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "SQL:      %s\n", s.Files.SQL)
	fmt.Fprintf(w, "Rollback: %s\n", s.Files.Rollback)
	if s.Files.Stats != "" {
		fmt.Fprintf(w, "Stats:    %s\n", s.Files.Stats)
	}
	return nil
}
