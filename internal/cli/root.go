package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeanMoon1/Phoenix-sub001/internal/config"
	"github.com/SeanMoon1/Phoenix-sub001/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	EnvFile string

	// Config supplies flag defaults. Loaded by the root command before any
	// subcommand runs; nil means built-in defaults.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the phoenix-scenario CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "phoenix-scenario",
		Short: "Compile disaster-training scenarios into SQL",
		Long: `Compile authored disaster-training scenario files into SQL seed
scripts for the Phoenix training platform.

Each input file is a JSON (or YAML) array of scene events. Events are
grouped into scenarios and written as an insert script plus a matching
rollback script. Answer options can be shuffled on the way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				formatter := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout()}
				return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			cfg, err := config.Load(opts.EnvFile)
			if err != nil {
				formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
				return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output and statistics file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "file with PHOENIX_* defaults")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}

// config returns the loaded configuration or the built-in defaults.
func (o *RootOptions) config() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

// newLogger builds the diagnostic logger for a command. Diagnostics go to
// w, which is stderr in normal use, so JSON output stays clean.
func (o *RootOptions) newLogger(w io.Writer) *zap.Logger {
	log, err := logger.ForCLI(o.Verbose, o.config().LogLevel, w)
	if err != nil {
		log, _ = logger.ForCLI(o.Verbose, "", w)
		log.Warn("Ignoring PHOENIX_LOG_LEVEL", zap.Error(err))
	}
	return log
}

// newFormatter creates the output formatter for a command.
func (o *RootOptions) newFormatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
		Logger:  o.newLogger(cmd.ErrOrStderr()),
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
