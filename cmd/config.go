package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. RESTAURANT_BACKEND_URL.
const EnvPrefix = "RESTAURANT"

type Config struct {
	BackendURL  string        `mapstructure:"backend_url"`
	APIPrefix   string        `mapstructure:"api_prefix"`
	Timeout     time.Duration `mapstructure:"timeout"`
	HTTPPort    string        `mapstructure:"http_port"`
	DBDriver    string        `mapstructure:"db_driver"`
	DBDsn       string        `mapstructure:"db_dsn"`
	LogLevel    string        `mapstructure:"log_level"`
	Seed        int64         `mapstructure:"seed"`
	SeedSize    int           `mapstructure:"seed_size"`
	TaxRate     float64       `mapstructure:"tax_rate"`
	MetricsCron string        `mapstructure:"metrics_cron"`
	PendingCron string        `mapstructure:"pending_cron"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", "http://localhost:8080")
	v.SetDefault("api_prefix", "/api")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("http_port", "8090")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 42)
	v.SetDefault("seed_size", 10)
	v.SetDefault("tax_rate", 0.10)
	v.SetDefault("metrics_cron", "@every 1m")
	v.SetDefault("pending_cron", "*/30 * * * * *")
}

// LoadConfig reads .env, the optional config file and RESTAURANT_* variables,
// in increasing precedence, on top of the defaults.
func LoadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return config, nil
}

// NewLogger returns the JSON logger at the configured level.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}
