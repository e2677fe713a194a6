package cli

import (
	"bytes"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagstats/internal/config"
	"github.com/matzehuels/dagstats/pkg/buildinfo"
	"github.com/matzehuels/dagstats/pkg/pipeline"
	"github.com/matzehuels/dagstats/pkg/stats"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "dagstats"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is resolved in the root command's PersistentPreRunE from the
	// config file and flag overrides.
	Config config.Config

	flags globalFlags
}

// globalFlags holds the persistent flag values before they are merged into Config.
type globalFlags struct {
	configPath  string
	precision   int
	bucketWidth int64
	format      string
	verbose     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Invoked with a single database path, the root command prints the statistics
// report. Errors are returned to the caller unprinted.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dagstats <database>",
		Short: "dagstats computes statistics over a transaction DAG",
		Long: `dagstats reads a transaction database, builds the reference graph rooted at
the origin transaction, and prints depth and reference statistics.

The database starts with the record count N, followed by N lines of
"<left> <right> <timestamp>". Line i+1 describes transaction i+1; transaction 1
is the implicit root.`,
		Args:          cobra.ExactArgs(1),
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.flags.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.resolveConfig(cmd)
		},
		RunE: c.runStats,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dagstats/config.toml)")
	pf.IntVarP(&c.flags.precision, "precision", "p", stats.DefaultPrecision, "decimal places for averages (0-10)")
	pf.Int64Var(&c.flags.bucketWidth, "bucket-width", stats.DefaultBucketWidth, "timestamp histogram bucket width")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")

	root.Flags().StringVarP(&c.flags.format, "format", "f", pipeline.FormatText, "report format: text, json, yaml")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// resolveConfig loads the config file with explicitly set flags applied on
// top, so validation sees the merged values.
func (c *CLI) resolveConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := config.Load(c.flags.configPath, func(cfg *config.Config) {
		if flags.Changed("precision") {
			cfg.Precision = c.flags.precision
		}
		if flags.Changed("bucket-width") {
			cfg.BucketWidth = c.flags.bucketWidth
		}
		if flags.Changed("format") {
			cfg.Format = c.flags.format
		}
	})
	if err != nil {
		return err
	}

	c.Config = cfg
	c.Logger.Debug("resolved config", "precision", cfg.Precision, "bucket_width", cfg.BucketWidth, "format", cfg.Format)
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Root Command
// =============================================================================

// runStats computes the report for args[0] and writes it to stdout. The
// report is fully encoded before anything is written.
func (c *CLI) runStats(cmd *cobra.Command, args []string) error {
	opts := c.Config.PipelineOptions()
	res, err := c.newRunner().Run(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pipeline.WriteReport(&buf, res, opts); err != nil {
		return err
	}
	_, err = buf.WriteTo(cmd.OutOrStdout())
	return err
}
