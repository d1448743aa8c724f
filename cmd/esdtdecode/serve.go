package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/0xAtelerix/esdt/library/esdt"
	"github.com/0xAtelerix/esdt/relay"
	"github.com/0xAtelerix/esdt/rpc"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON-RPC decoder and, optionally, the NATS relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("rpc-address", ":8545", "JSON-RPC listen address")
	flags.Bool("relay", false, "relay decoded transfers between NATS subjects")
	flags.String("nats-url", "nats://127.0.0.1:4222", "NATS server URL")
	flags.String("input-subject", "transactions.raw", "subject carrying raw transactions")
	flags.String("output-subject", "transactions.esdt", "subject receiving decoded transfers")
	flags.String("payload", "json", "decoded transfer encoding: json or cbor")

	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	decoder := esdt.NewDecoder(&a.logger)

	rpcLogger := a.logger.With().Str("component", "rpc").Logger()
	server := rpc.NewStandardRPCServer(&rpcLogger)
	rpc.AddTokenMethods(server, decoder)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, rpc.ServerConfig{
			Address:         a.cfg.RPC.Address,
			ReadTimeout:     a.cfg.RPC.ReadTimeout,
			WriteTimeout:    a.cfg.RPC.WriteTimeout,
			ShutdownTimeout: a.cfg.RPC.ShutdownTimeout,
		})
	})

	if a.cfg.Relay.Enabled {
		relayLogger := a.logger.With().Str("component", "relay").Logger()
		r := relay.New(a.cfg.Relay, decoder, &relayLogger)

		g.Go(func() error {
			return r.Run(ctx)
		})
	}

	return g.Wait()
}
