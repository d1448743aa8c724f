package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/0xAtelerix/esdt/config"
)

// Version value, injected via go build `ldflags` at build time
var version = "dev"

// Commit sha1 value, injected via go build `ldflags` at build time
var commit = ""

type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "esdtdecode",
		Short:         "Decode ESDT token transfers from transaction call data",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a YAML config file (default: ./esdt.yaml, /etc/esdt/esdt.yaml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")

	root.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(),
		newServeCmd(a),
	)

	return root
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{ //nolint:gochecknoglobals // read only
	"log-level":      "log.level",
	"log-format":     "log.format",
	"rpc-address":    "rpc.address",
	"relay":          "relay.enabled",
	"nats-url":       "relay.url",
	"input-subject":  "relay.input_subject",
	"output-subject": "relay.output_subject",
	"payload":        "relay.payload",
}

func (a *app) load(cmd *cobra.Command) error {
	var bindErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}

		bindErr = a.v.BindPFlag(key, f)
	})

	if bindErr != nil {
		return fmt.Errorf("bind flags: %w", bindErr)
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(a.v, path)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.Log.Logger(os.Stderr)

	return nil
}

func versionString() string {
	if len(commit) >= 7 {
		return fmt.Sprintf("%s (Commit %s)", version, commit[:7])
	}

	return version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("esdtdecode failed")
		stop()
		os.Exit(1)
	}
}
