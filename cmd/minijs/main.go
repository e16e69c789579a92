// Command minijs compiles and minifies minijs programs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/orizon-lang/minijs/internal/cli"
	"github.com/orizon-lang/minijs/internal/config"
	"github.com/orizon-lang/minijs/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		cli.ExitWithError("%v", err)
	}
}

// skipSetup marks commands that run without loading the configuration.
const skipSetup = "minijs/skip-setup"

// app is the state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v          *viper.Viper
	configFile string

	cfg config.Config
	log *zap.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		v:      config.NewViper(),
		cfg:    config.NewConfig(),
		log:    zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           cli.ToolName,
		Short:         "Minifying compiler for a small JavaScript-like language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./minijs.{toml,yaml,json} if present)")
	pf.String("log-format", logger.FormatAuto, "log format: auto, console, json or logfmt")
	pf.String("log-level", "info", "minimum log level")

	root.AddCommand(
		newBuildCommand(a),
		newASTCommand(a),
		newScopesCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)

	return root
}

// setup loads the configuration with cmd's flags bound on top and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg, err := config.Load(a.v, a.configFile, cli.Version)
	if err != nil {
		return err
	}

	log, err := logger.New(a.stderr, cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}
