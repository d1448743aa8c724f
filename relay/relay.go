package relay

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/0xAtelerix/esdt/config"
	"github.com/0xAtelerix/esdt/library/errors"
	"github.com/0xAtelerix/esdt/library/esdt"
)

const (
	ErrMalformedMessage = errors.SDKError("malformed transaction message")
	ErrPublish          = errors.SDKError("failed to publish decoded transfer")
)

// Transaction is the inbound message: a transaction hash and its call data.
type Transaction struct {
	Hash string  `json:"hash"`
	Data *string `json:"data"`
}

// DecodedTransfer is published for every transaction carrying a token transfer.
type DecodedTransfer struct {
	Hash    string `json:"hash"    cbor:"hash"`
	Kind    string `json:"kind"    cbor:"kind"`
	TokenID string `json:"tokenId" cbor:"tokenId"`
	Amount  string `json:"amount"  cbor:"amount"`
}

// Publisher is the subset of *nats.Conn the relay writes to.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type Stats struct {
	Received  uint64
	Published uint64
	Skipped   uint64
	Malformed uint64
}

// Relay consumes raw transactions from NATS, decodes their call data and
// republishes recognized token transfers.
type Relay struct {
	cfg     config.RelayConfig
	decoder *esdt.Decoder
	logger  *zerolog.Logger
	marshal func(any) ([]byte, error)

	received  atomic.Uint64
	published atomic.Uint64
	skipped   atomic.Uint64
	malformed atomic.Uint64
}

func New(cfg config.RelayConfig, decoder *esdt.Decoder, logger *zerolog.Logger) *Relay {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	marshal := json.Marshal
	if cfg.Payload == "cbor" {
		marshal = cbor.Marshal
	}

	return &Relay{
		cfg:     cfg,
		decoder: decoder,
		logger:  logger,
		marshal: marshal,
	}
}

func (r *Relay) Stats() Stats {
	return Stats{
		Received:  r.received.Load(),
		Published: r.published.Load(),
		Skipped:   r.skipped.Load(),
		Malformed: r.malformed.Load(),
	}
}

// Handle processes one inbound message. It returns whether a transfer was
// published.
func (r *Relay) Handle(pub Publisher, payload []byte) (bool, error) {
	r.received.Add(1)

	var tx Transaction
	if err := json.Unmarshal(payload, &tx); err != nil {
		r.malformed.Add(1)

		return false, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	var data string
	if tx.Data != nil {
		data = *tx.Data
	}

	out, kind := r.decoder.DecodeKind(data)
	if kind == esdt.None {
		r.skipped.Add(1)

		return false, nil
	}

	msg, err := r.marshal(DecodedTransfer{
		Hash:    tx.Hash,
		Kind:    kind.String(),
		TokenID: out.TokenID,
		Amount:  out.Amount,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPublish, err)
	}

	if err := pub.Publish(r.cfg.OutputSubject, msg); err != nil {
		return false, fmt.Errorf("%w: %w", ErrPublish, err)
	}

	r.published.Add(1)

	r.logger.Debug().
		Str("hash", tx.Hash).
		Stringer("kind", kind).
		Str("token_id", out.TokenID).
		Str("amount", out.Amount).
		Msg("Relayed token transfer")

	return true, nil
}

// Run connects to NATS and relays messages until ctx is cancelled. Pending
// messages are drained before it returns.
func (r *Relay) Run(ctx context.Context) error {
	closed := make(chan struct{})

	opts := []nats.Option{
		nats.Name("esdt-decoder"),
		nats.Timeout(r.cfg.ConnectWait),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			r.logger.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			r.logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			r.logger.Info().Msg("NATS connection closed")
			close(closed)
		}),
	}

	r.logger.Info().Str("url", r.cfg.URL).Msg("Connecting to NATS")

	nc, err := nats.Connect(r.cfg.URL, opts...)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}

	handler := func(msg *nats.Msg) {
		if _, err := r.Handle(nc, msg.Data); err != nil {
			r.logger.Error().Err(err).Str("subject", msg.Subject).Msg("Failed to relay message")
		}
	}

	if r.cfg.QueueGroup != "" {
		_, err = nc.QueueSubscribe(r.cfg.InputSubject, r.cfg.QueueGroup, handler)
	} else {
		_, err = nc.Subscribe(r.cfg.InputSubject, handler)
	}

	if err != nil {
		nc.Close()

		return fmt.Errorf("subscribe %s: %w", r.cfg.InputSubject, err)
	}

	r.logger.Info().
		Str("input", r.cfg.InputSubject).
		Str("output", r.cfg.OutputSubject).
		Str("queue_group", r.cfg.QueueGroup).
		Msg("Relay subscribed")

	<-ctx.Done()

	// Drain stops sub, flushes in-flight handlers and closes nc.
	if err := nc.Drain(); err != nil {
		nc.Close()

		return fmt.Errorf("drain NATS: %w", err)
	}

	select {
	case <-closed:
	case <-time.After(r.cfg.ConnectWait):
		nc.Close()
	}

	stats := r.Stats()
	r.logger.Info().
		Uint64("received", stats.Received).
		Uint64("published", stats.Published).
		Uint64("skipped", stats.Skipped).
		Uint64("malformed", stats.Malformed).
		Msg("Relay stopped")

	return nil
}
