// Package cli implements the excalimaid command-line interface.
//
// The root command converts one Excalidraw document to a Mermaid flowchart:
//
//	excalimaid diagram.excalidraw                 # markup to stdout
//	excalimaid diagram.excalidraw -o diagram.mmd  # write file, print summary
//	excalimaid diagram.excalidraw -d LR --json    # structured result
//
// Subcommands:
//   - preview: render the extracted graph through Graphviz (svg, png, dot)
//   - inspect: show the extracted nodes, edges and groups
//   - pick: choose a diagram interactively and convert it
//   - serve: run the HTTP API
//   - cache: manage the file cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Defaults come from the config file (see internal/config); flags win.
//
// # Logging
//
// Logs go to stderr at info level; --verbose switches to debug.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/excalimaid/internal/config"
	"github.com/matzehuels/excalimaid/pkg/buildinfo"
	"github.com/matzehuels/excalimaid/pkg/errors"
	"github.com/matzehuels/excalimaid/pkg/pipeline"
)

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

	// Out receives command results (markup, JSON, summaries).
	Out io.Writer

	// Err receives progress indicators and interactive screens.
	Err io.Writer

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a CLI writing results to out and logs to errOut.
func New(out, errOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errOut, level),
		Out:    out,
		Err:    errOut,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var flags convertFlags

	root := &cobra.Command{
		Use:   "excalimaid <input>",
		Short: "Convert Excalidraw diagrams to Mermaid flowcharts",
		Long: `Excalimaid reads an Excalidraw document and writes the equivalent Mermaid
flowchart. Shapes become nodes, bound arrows and lines become edges, frames
and element groups become subgraphs, and the layout direction is inferred
from the diagram's geometry unless -d forces one.`,
		Version:       buildinfo.Version,
		Args:          inputArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			return c.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], flags)
		},
	}

	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/excalimaid/config.toml)")
	flags.register(root)

	root.AddCommand(c.previewCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// inputArg requires exactly one input path.
func inputArg(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errors.New(errors.ErrCodeInvalidInput, "missing input file (usage: %s)", cmd.UseLine())
	case 1:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "expected one input file, got %d", len(args))
	}
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	c.cfg = cfg
	return nil
}

// settings returns the loaded configuration, or the defaults when commands run
// without the root's pre-run hook (as in tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// direction picks the flag value over the configured default.
func (c *CLI) direction(flag string) string {
	if flag != "" {
		return flag
	}
	return c.settings().Direction
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cc config.CacheConfig) (*pipeline.Runner, error) {
	store, err := cc.Open(ctx)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened cache", "backend", cc.Backend)
	r := pipeline.NewRunner(store, nil, c.Logger)
	r.TTL = cc.TTL
	return r, nil
}

// =============================================================================
// Output Helpers
// =============================================================================

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
