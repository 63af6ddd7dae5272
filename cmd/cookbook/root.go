package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/cookbook/internal/client"
	"github.com/hammamikhairi/cookbook/internal/config"
	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	out     io.Writer
	printer *display.Printer

	cfgFile string
	verbose bool
	quiet   bool

	cfg     config.Config
	log     *logger.Logger
	logFile *os.File
}

func newApp(out io.Writer) *app {
	return &app{
		v:       viper.New(),
		out:     out,
		printer: display.NewPrinter(out),
	}
}

// execute runs the command line in args and releases the log file whether
// or not the command succeeds.
func (a *app) execute(ctx context.Context, version string, args []string) error {
	defer func() {
		if err := a.teardown(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing log file: %v\n", err)
		}
	}()

	cmd := a.rootCmd()
	cmd.Version = version
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookbook",
		Short: "Recipe registry service and client",
		Long: `Cookbook stores ingredients and recipes and summarizes a recipe into its
total cook time and the base ingredients it needs.

Run "cookbook serve" to start the HTTP API. The other commands talk to a
running server (see --server).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setup() },
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./cookbook.yaml, then ~/.config/cookbook/config.yaml)")
	pf.String("server", "", "server URL for client commands (overrides client.url)")
	pf.BoolVar(&a.verbose, "verbose", false, "enable verbose/debug logging")
	pf.BoolVar(&a.quiet, "quiet", false, "disable all logging")
	pf.String("log-file", "", "file to write logs to (default stderr)")

	_ = a.v.BindPFlag("client.url", pf.Lookup("server"))
	_ = a.v.BindPFlag("log.file", pf.Lookup("log-file"))

	cmd.AddCommand(
		newServeCmd(a),
		newParseCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newSummaryCmd(a),
		newListCmd(a),
	)
	return cmd
}

// setup loads configuration and opens the log output.
func (a *app) setup() error {
	cfg, used, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = logger.LevelVerbose
	}
	if a.quiet {
		level = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	if path := cfg.Log.File; path != "" && path != "stderr" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating log directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			logOut = f
			a.logFile = f
		}
	}

	a.log = logger.New(level, logOut)
	if used != "" {
		a.log.Debug("config: using %s", used)
	}
	return nil
}

func (a *app) teardown() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

// client returns an API client for the configured server.
func (a *app) client() *client.Client {
	return client.New(a.cfg.Client.URL, a.log.Named("client"),
		client.WithHTTPTimeout(a.cfg.Client.Timeout),
	)
}
