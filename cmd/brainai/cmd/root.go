// Package cmd implements the brainai CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/brainai/internal/config"
	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
	"github.com/Aman-CERP/brainai/internal/logging"
	"github.com/Aman-CERP/brainai/internal/output"
	"github.com/Aman-CERP/brainai/pkg/brain"
	"github.com/Aman-CERP/brainai/pkg/version"
)

// globals holds the persistent flags and per-run state shared by commands.
type globals struct {
	debug      bool
	projectDir string
	baseURL    string
	apiKey     string
	jsonOutput bool

	cfg            *config.Config
	registry       *brain.Registry
	loggingCleanup func()
}

// NewRootCmd creates the root command for the brainai CLI.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "brainai",
		Short: "Client for the Brain AI memory and reasoning service",
		Long: `brainai talks to a Brain AI service: it stores and searches memories,
teaches patterns, asks for reasoning, and manages vectors and a knowledge graph.

The vector subcommands similarity, distance, normalize and random run locally
and need no service.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("brainai version {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.BoolVar(&g.debug, "debug", false, "Enable debug logging to ~/.brainai/logs/")
	pf.StringVar(&g.projectDir, "config-dir", "", "Project directory holding .brainai.yaml (default: nearest project root)")
	pf.StringVar(&g.baseURL, "base-url", "", "Brain AI service URL (overrides config)")
	pf.StringVar(&g.apiKey, "api-key", "", "API key (overrides config)")
	pf.BoolVar(&g.jsonOutput, "json", false, "Print results as JSON")

	cmd.PersistentPreRunE = g.start
	cmd.PersistentPostRunE = g.stop

	cmd.AddCommand(newVersionCmd(g))
	cmd.AddCommand(newConfigCmd(g))
	cmd.AddCommand(newStatusCmd(g))
	cmd.AddCommand(newStatsCmd(g))
	cmd.AddCommand(newMemoryCmd(g))
	cmd.AddCommand(newLearnCmd(g))
	cmd.AddCommand(newPatternsCmd(g))
	cmd.AddCommand(newReasonCmd(g))
	cmd.AddCommand(newFeedbackCmd(g))
	cmd.AddCommand(newVectorCmd(g))
	cmd.AddCommand(newGraphCmd(g))
	cmd.AddCommand(newClearCmd(g))
	cmd.AddCommand(newBatchCmd(g))
	cmd.AddCommand(newLogsCmd())

	return cmd
}

// start sets up logging. Configuration is loaded lazily so that commands
// such as `version` and `config init` work with a broken config file.
func (g *globals) start(_ *cobra.Command, _ []string) error {
	if g.debug {
		lc := logging.DebugConfig()
		if cfg, err := g.config(); err == nil {
			lc = cfg.LoggingConfig()
		}
		logger, cleanup, err := logging.Setup(lc)
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		g.loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("debug_logging_enabled",
			slog.String("log_file", lc.FilePath),
			slog.String("version", version.Short()))
		return nil
	}

	level := "warn"
	if cfg, err := g.config(); err == nil && cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}
	slog.SetDefault(logging.NewStderrLogger(level))
	return nil
}

func (g *globals) stop(_ *cobra.Command, _ []string) error {
	if g.registry != nil {
		g.registry.Clear()
	}
	if g.loggingCleanup != nil {
		slog.Info("debug_logging_stopped")
		g.loggingCleanup()
		g.loggingCleanup = nil
	}
	return nil
}

// config loads and caches the effective configuration, with flag overrides
// applied on top.
func (g *globals) config() (*config.Config, error) {
	if g.cfg != nil {
		return g.cfg, nil
	}

	dir := g.projectDir
	if dir == "" {
		root, err := config.FindProjectRoot(".")
		if err != nil {
			return nil, err
		}
		dir = root
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if g.baseURL != "" {
		cfg.Client.BaseURL = g.baseURL
	}
	if g.apiKey != "" {
		cfg.Client.APIKey = g.apiKey
	}
	g.cfg = cfg
	return cfg, nil
}

// client returns the shared client for the configured service. Clients are
// closed when the command finishes.
func (g *globals) client() (*brain.Client, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}
	if g.registry == nil {
		g.registry = brain.NewRegistry(cfg.Registry.Capacity)
	}

	opts := append(cfg.ClientOptions(),
		brain.WithLogger(slog.Default()),
		brain.WithUserAgent(version.UserAgent()),
	)
	return g.registry.GetOrCreate(cfg.Client.BaseURL, cfg.ClientConfig(), opts...)
}

// render prints v as JSON under --json, otherwise calls human.
func (g *globals) render(cmd *cobra.Command, v any, human func(out *output.Writer)) error {
	out := output.New(cmd.OutOrStdout())
	if g.jsonOutput {
		return out.JSON(v)
	}
	human(out)
	return nil
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err, jsonRequested(root))
	}
	return err
}

func jsonRequested(root *cobra.Command) bool {
	flag := root.PersistentFlags().Lookup("json")
	return flag != nil && flag.Value.String() == "true"
}

func printError(w io.Writer, err error, asJSON bool) {
	if asJSON {
		if data, jerr := brainerrors.FormatJSON(err); jerr == nil {
			_, _ = fmt.Fprintln(w, string(data))
			return
		}
	}
	_, _ = fmt.Fprint(w, brainerrors.FormatForCLI(err))
}
