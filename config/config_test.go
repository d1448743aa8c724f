package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, ":8545", cfg.RPC.Address)
	require.Equal(t, 15*time.Second, cfg.RPC.ReadTimeout)
	require.False(t, cfg.Relay.Enabled)
	require.Equal(t, "transactions.raw", cfg.Relay.InputSubject)
	require.Equal(t, "json", cfg.Relay.Payload)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "esdt.yaml")

	err := os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
rpc:
  address: ":9000"
relay:
  enabled: true
  payload: cbor
  connect_wait: 2s
`), 0o600)
	require.NoError(t, err)

	t.Setenv("ESDT_RELAY_OUTPUT_SUBJECT", "esdt.out")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, ":9000", cfg.RPC.Address)
	require.True(t, cfg.Relay.Enabled)
	require.Equal(t, "cbor", cfg.Relay.Payload)
	require.Equal(t, 2*time.Second, cfg.Relay.ConnectWait)
	require.Equal(t, "esdt.out", cfg.Relay.OutputSubject)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func validConfig() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		RPC: RPCConfig{
			Address:         ":8545",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Relay: RelayConfig{
			Enabled:       true,
			InputSubject:  "in",
			OutputSubject: "out",
			Payload:       "json",
			ConnectWait:   time.Second,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"empty level", func(c *Config) { c.Log.Level = "" }, ErrInvalidLogLevel},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
		{"no address", func(c *Config) { c.RPC.Address = "" }, ErrEmptyRPCAddress},
		{"zero timeout", func(c *Config) { c.RPC.WriteTimeout = 0 }, ErrNonPositiveTimeout},
		{"no subject", func(c *Config) { c.Relay.InputSubject = "" }, ErrEmptySubject},
		{"same subjects", func(c *Config) { c.Relay.OutputSubject = "in" }, ErrSameSubjects},
		{"bad payload", func(c *Config) { c.Relay.Payload = "xml" }, ErrInvalidPayload},
		{"relay disabled skips relay checks", func(c *Config) {
			c.Relay.Enabled = false
			c.Relay.Payload = "xml"
		}, nil},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.want == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := LogConfig{Level: "warn", Format: "json"}.Logger(&buf)
	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"k":"v"`)
}
