package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/cosmez/redisrest-go"
	"github.com/cosmez/redisrest-go/internal/config"
	"github.com/cosmez/redisrest-go/internal/logging"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev" // set at build time via -ldflags "-X main.version=..."

type options struct {
	url        string
	token      string
	profile    string
	configPath string
	command    string
	pipeline   bool
	multi      bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:           "redisrest",
		Short:         "A command line client for Redis over REST",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pipeline && opts.multi {
				return errors.New("--pipeline and --multi are mutually exclusive")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			settings, logger, err := resolveSettings(opts)
			if err != nil {
				color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			client, err := redisrest.New(settings.URL, settings.Token, redisrest.WithLogger(logger))
			if err != nil {
				color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			logger.WithFields(logrus.Fields{"host": client.Host(), "profile": settings.Profile}).Debug("client ready")

			a := newApp(client, cmd.OutOrStdout(), cmd.InOrStdin())
			a.log = logger

			switch {
			case opts.pipeline || opts.multi:
				return a.runBatch(ctx, cmd.InOrStdin(), opts.multi)
			case opts.command != "":
				return a.runOneShot(ctx, opts.command)
			default:
				a.color = true
				a.confirm = true
				return runRepl(ctx, a, client.Host())
			}
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.url, "url", "", "REST endpoint URL (default $"+redisrest.EnvURL+")")
	flags.StringVar(&opts.token, "token", "", "REST bearer token (default $"+redisrest.EnvToken+")")
	flags.StringVar(&opts.profile, "profile", "", "Profile name from the config file")
	flags.StringVar(&opts.configPath, "config", "", "Config file path")
	flags.StringVarP(&opts.command, "command", "c", "", "Execute a single command and exit")
	flags.BoolVar(&opts.pipeline, "pipeline", false, "Read commands from stdin and send them as one pipeline")
	flags.BoolVar(&opts.multi, "multi", false, "Read commands from stdin and send them as one transaction")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every request to stderr")

	return rootCmd
}

// resolveSettings loads the config file and merges it with flags and
// environment, then builds the logger the settings ask for.
func resolveSettings(opts options) (config.Settings, *logrus.Logger, error) {
	path := opts.configPath
	required := path != ""
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Settings{}, nil, err
		}
	}

	file, err := config.Load(path, required)
	if err != nil {
		return config.Settings{}, nil, err
	}

	overrides := config.Overrides{URL: opts.url, Token: opts.token, Profile: opts.profile}
	if opts.verbose {
		overrides.LogLevel = "debug"
	}
	settings, err := file.Resolve(overrides)
	if err != nil {
		return config.Settings{}, nil, err
	}

	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return config.Settings{}, nil, err
	}
	return settings, logger, nil
}

// runOneShot executes a single command line and reports failure through the
// returned error so the process exits non-zero.
func (a *app) runOneShot(ctx context.Context, line string) error {
	_, err := a.execute(ctx, line)
	return err
}

// runBatch reads one command per line from r and sends them together.
func (a *app) runBatch(ctx context.Context, r io.Reader, atomic bool) error {
	cmds, err := readBatch(r, a.reg)
	if err != nil {
		a.printError(err)
		return err
	}
	if len(cmds) == 0 {
		return errors.New("no commands on stdin")
	}
	return a.flush(ctx, cmds, atomic)
}
