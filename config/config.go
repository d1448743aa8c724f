package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	sdkerrors "github.com/0xAtelerix/esdt/library/errors"
)

const (
	ErrInvalidLogLevel    = sdkerrors.SDKError("invalid log level")
	ErrInvalidLogFormat   = sdkerrors.SDKError("invalid log format")
	ErrInvalidPayload     = sdkerrors.SDKError("invalid relay payload format")
	ErrEmptySubject       = sdkerrors.SDKError("relay subject must not be empty")
	ErrSameSubjects       = sdkerrors.SDKError("relay input and output subjects must differ")
	ErrEmptyRPCAddress    = sdkerrors.SDKError("rpc address must not be empty")
	ErrNonPositiveTimeout = sdkerrors.SDKError("timeout must be positive")
)

const EnvPrefix = "ESDT"

type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	RPC   RPCConfig   `mapstructure:"rpc"`
	Relay RelayConfig `mapstructure:"relay"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

type RPCConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RelayConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	InputSubject  string        `mapstructure:"input_subject"`
	OutputSubject string        `mapstructure:"output_subject"`
	QueueGroup    string        `mapstructure:"queue_group"`
	Payload       string        `mapstructure:"payload"` // json or cbor
	ConnectWait   time.Duration `mapstructure:"connect_wait"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("rpc.address", ":8545")
	v.SetDefault("rpc.read_timeout", "15s")
	v.SetDefault("rpc.write_timeout", "15s")
	v.SetDefault("rpc.shutdown_timeout", "5s")

	v.SetDefault("relay.enabled", false)
	v.SetDefault("relay.url", "nats://127.0.0.1:4222")
	v.SetDefault("relay.input_subject", "transactions.raw")
	v.SetDefault("relay.output_subject", "transactions.esdt")
	v.SetDefault("relay.queue_group", "esdt-decoder")
	v.SetDefault("relay.payload", "json")
	v.SetDefault("relay.connect_wait", "10s")
}

// New returns a viper instance with defaults and ESDT_* environment bindings.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// Load reads the optional config file into v and decodes the result.
// A missing file is not an error when path is empty.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("esdt")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/esdt")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}

	if c.RPC.Address == "" {
		return ErrEmptyRPCAddress
	}

	if c.RPC.ReadTimeout <= 0 || c.RPC.WriteTimeout <= 0 || c.RPC.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: rpc", ErrNonPositiveTimeout)
	}

	if !c.Relay.Enabled {
		return nil
	}

	if c.Relay.InputSubject == "" || c.Relay.OutputSubject == "" {
		return ErrEmptySubject
	}

	if c.Relay.InputSubject == c.Relay.OutputSubject {
		return ErrSameSubjects
	}

	switch c.Relay.Payload {
	case "json", "cbor":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPayload, c.Relay.Payload)
	}

	if c.Relay.ConnectWait <= 0 {
		return fmt.Errorf("%w: relay", ErrNonPositiveTimeout)
	}

	return nil
}

// Logger builds the process logger from c, writing to w.
func (c LogConfig) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if c.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w)

	return logger.Level(level).With().Timestamp().Logger()
}
