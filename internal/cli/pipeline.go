package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeanMoon1/Phoenix-sub001/internal/convert"
	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
	"github.com/SeanMoon1/Phoenix-sub001/internal/shuffle"
	"github.com/SeanMoon1/Phoenix-sub001/internal/sqlgen"
)

// CompileOptions holds the flags shared by commands that turn events into
// SQL. Zero-valued flags that were not given on the command line fall back
// to the environment configuration.
type CompileOptions struct {
	*RootOptions
	TeamID    int64
	CreatedBy int64
	Output    string
	Batch     bool
	Shuffle   bool
	NoShuffle bool
	Seed      int64
	Dialect   string

	seedSet bool
	dialect sqlgen.Dialect
}

// addCompileFlags registers the shared flags on cmd.
func addCompileFlags(cmd *cobra.Command, opts *CompileOptions) {
	cmd.Flags().Int64Var(&opts.TeamID, "team-id", 0, "team that owns the scenarios (default $PHOENIX_TEAM_ID or 1)")
	cmd.Flags().Int64Var(&opts.CreatedBy, "created-by", 0, "user recorded as author (default $PHOENIX_CREATED_BY or 1)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output SQL file path")
	cmd.Flags().BoolVar(&opts.Batch, "batch", false, "wrap the script in a single transaction")
	cmd.Flags().BoolVar(&opts.Shuffle, "shuffle", true, "shuffle answer options")
	cmd.Flags().BoolVar(&opts.NoShuffle, "no-shuffle", false, "keep answer options in authored order")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "shuffle seed for reproducible output (default: current time)")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "SQL dialect: mysql or portable (default $PHOENIX_DIALECT or mysql)")
}

// resolve applies configuration defaults to flags the user did not set
// and validates the result.
func (o *CompileOptions) resolve(cmd *cobra.Command) error {
	cfg := o.config()
	flags := cmd.Flags()

	if !flags.Changed("team-id") {
		o.TeamID = cfg.TeamID
	}
	if !flags.Changed("created-by") {
		o.CreatedBy = cfg.CreatedBy
	}
	if !flags.Changed("dialect") {
		o.Dialect = cfg.Dialect
	}
	if o.NoShuffle {
		o.Shuffle = false
	}
	o.seedSet = flags.Changed("seed")

	if o.TeamID < 0 || o.CreatedBy < 0 {
		return fmt.Errorf("--team-id and --created-by must not be negative")
	}
	if o.seedSet && (o.Seed < 0 || o.Seed > shuffle.MaxSeed) {
		return fmt.Errorf("--seed must be between 0 and %d", shuffle.MaxSeed)
	}
	d, err := sqlgen.ParseDialect(o.Dialect)
	if err != nil {
		return err
	}
	o.dialect = d
	return nil
}

// outputPath returns the SQL path, defaulting to name inside the
// configured output directory.
func (o *CompileOptions) outputPath(name string) string {
	if o.Output != "" {
		return o.Output
	}
	return filepath.Join(o.config().OutputDir, name)
}

func (o *CompileOptions) newConverter(log *zap.Logger) *convert.Converter {
	cfg := convert.Config{
		TeamID:    o.TeamID,
		CreatedBy: o.CreatedBy,
		Shuffle:   o.Shuffle,
		Logger:    log,
	}
	if o.seedSet {
		so := shuffle.DefaultOptions(o.Seed)
		cfg.ShuffleOptions = &so
	}
	return convert.New(cfg)
}

func (o *CompileOptions) newGenerator() *sqlgen.Generator {
	return sqlgen.New(sqlgen.Config{Dialect: o.dialect})
}

// Scripts is the rendered output of one run.
type Scripts struct {
	SQL      string
	Rollback string
}

// render produces the insert and rollback scripts for a result.
func (o *CompileOptions) render(gen *sqlgen.Generator, r *ir.Result) (*Scripts, error) {
	var (
		sql string
		err error
	)
	if o.Batch {
		sql, err = gen.GenerateBatchSQL(r)
	} else {
		sql, err = gen.GenerateSQL(r)
	}
	if err != nil {
		return nil, err
	}
	return &Scripts{SQL: sql, Rollback: gen.GenerateRollbackSQL(r.ScenarioCodes())}, nil
}

// OutputFiles names the files written for one run.
type OutputFiles struct {
	SQL      string `json:"sql"`
	Rollback string `json:"rollback"`
	Stats    string `json:"stats,omitempty"`
}

// outputFiles derives the rollback and statistics paths from the SQL path.
func outputFiles(sqlPath string, withStats bool) OutputFiles {
	base := strings.TrimSuffix(sqlPath, filepath.Ext(sqlPath))
	files := OutputFiles{SQL: sqlPath, Rollback: base + "_rollback.sql"}
	if withStats {
		files.Stats = base + "_stats.json"
	}
	return files
}

// writeOutputs writes every output file. Nothing is written before the
// whole run has been rendered.
func writeOutputs(files OutputFiles, scripts *Scripts, report *RunReport) error {
	if dir := filepath.Dir(files.SQL); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(files.SQL, []byte(scripts.SQL), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", files.SQL, err)
	}
	if err := os.WriteFile(files.Rollback, []byte(scripts.Rollback), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", files.Rollback, err)
	}
	if files.Stats != "" && report != nil {
		if err := writeReport(files.Stats, report); err != nil {
			return err
		}
	}
	return nil
}

// conversionErrorCode classifies a converter error.
func conversionErrorCode(err error) string {
	if errors.Is(err, convert.ErrInvalidShuffleOptions) {
		return ErrCodeInvalidFlag
	}
	return ErrCodeConvertFailed
}
