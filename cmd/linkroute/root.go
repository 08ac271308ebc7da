package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/linkrouter/core/config"
	"github.com/dmitrymomot/linkrouter/core/logger"
	"github.com/dmitrymomot/linkrouter/core/router"
	"github.com/dmitrymomot/linkrouter/core/taskstack"
)

// cliConfig is read from the environment; flags override it.
type cliConfig struct {
	LogLevel  string `env:"LINKROUTE_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LINKROUTE_LOG_FORMAT" envDefault:"text"`
	Routes    string `env:"LINKROUTE_ROUTES" envDefault:"routes.yaml"`
}

// app is the state shared by subcommands for one invocation.
type app struct {
	cli    cliConfig
	log    *slog.Logger
	router *router.Router
	stack  *taskstack.Stack
	reg    *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		routesPath string
		logLevel   string
		logFormat  string
	)

	cmd := &cobra.Command{
		Use:   "linkroute",
		Short: "Inspect and exercise a link route manifest",
		Long: `linkroute loads a YAML route manifest and resolves addresses against it.

Routes get echo handlers that print the parameters they receive, so the
commands show exactly what a handler would see.

Environment:
  LINKROUTE_ROUTES       manifest path (default routes.yaml)
  LINKROUTE_LOG_LEVEL    debug, info, warn or error (default warn)
  LINKROUTE_LOG_FORMAT   text or json (default text)
  LINKROUTER_*           router settings, see router.Config`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&routesPath, "routes", "r", "", "route manifest path (env LINKROUTE_ROUTES)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (env LINKROUTE_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (env LINKROUTE_LOG_FORMAT)")

	// setup runs lazily so commands that need no manifest never read one
	setup := func(cmd *cobra.Command) error {
		if err := config.Load(&a.cli); err != nil {
			return err
		}
		if routesPath != "" {
			a.cli.Routes = routesPath
		}
		if logLevel != "" {
			a.cli.LogLevel = logLevel
		}
		if logFormat != "" {
			a.cli.LogFormat = logFormat
		}

		a.log = logger.New(
			logger.WithOutput(cmd.ErrOrStderr()),
			logger.WithLevel(logger.ParseLevel(a.cli.LogLevel)),
			logger.WithFormat(logger.Format(a.cli.LogFormat)),
			logger.WithAttr(logger.Component("linkroute")),
		)
		return a.load(cmd.OutOrStdout())
	}

	cmd.AddCommand(
		matchCmd(a, setup),
		openCmd(a, setup),
		objectCmd(a, setup),
		routesCmd(a, setup),
		generateCmd(a, setup),
		reconcileCmd(),
		versionCmd(),
	)

	return cmd
}

// load builds the router from the environment and the manifest.
func (a *app) load(out io.Writer) error {
	var rc router.Config
	if err := config.Load(&rc); err != nil {
		return err
	}

	m, err := loadManifest(a.cli.Routes)
	if err != nil {
		return err
	}

	a.reg = prometheus.NewRegistry()
	a.stack = taskstack.NewStack()

	opts := []router.Option{
		router.WithConfig(rc),
		router.WithLogger(a.log),
		router.WithStack(a.stack),
		router.WithMetrics(router.NewMetrics(
			router.WithRegistry(a.reg),
			router.WithNamespace(rc.MetricsNamespace),
		)),
	}
	a.router = router.New(append(opts, m.options()...)...)

	if err := m.register(a.router, out); err != nil {
		return err
	}
	a.log.Debug("manifest loaded", logger.Group("manifest",
		logger.Key("path", a.cli.Routes),
		logger.Count("routes", len(m.Routes)),
	))
	return nil
}

// writeStats prints every counter sample gathered from the router metrics.
func (a *app) writeStats(out io.Writer) error {
	families, err := a.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := ""
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", l.GetName(), l.GetValue())
			}
			fmt.Fprintf(out, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
		}
	}
	return nil
}

var errUnresolved = errors.New("address not resolved")
