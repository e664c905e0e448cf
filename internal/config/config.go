package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/memohai/tokembed/internal/media"
	"github.com/memohai/tokembed/internal/tiktok"
)

const (
	DefaultConfigPath      = "config.toml"
	DefaultEnvFile         = ".env"
	DefaultHTTPAddr        = ":8080"
	DefaultUserAgent       = "Mozilla/5.0 (compatible; tokembed; +https://github.com/memohai/tokembed)"
	DefaultRedirectTimeout = 10 * time.Second
	DefaultMetadataTimeout = 15 * time.Second
	DefaultMediaTimeout    = 2 * time.Minute
	DefaultReplyTimeout    = 2 * time.Minute
	DefaultPipelineTimeout = 5 * time.Minute
)

// ErrConfigInvalid is returned when the configuration cannot be loaded or fails validation.
var ErrConfigInvalid = errors.New("invalid configuration")

// Config is read from the TOML file and then overridden by environment
// variables named after the section and key, e.g. DISCORD_TOKEN or
// HTTP_MEDIA_TIMEOUT.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Discord  DiscordConfig  `toml:"discord"`
	Server   ServerConfig   `toml:"server"`
	TikTok   TikTokConfig   `toml:"tiktok"`
	HTTP     HTTPConfig     `toml:"http"`
	Media    MediaConfig    `toml:"media"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

type DiscordConfig struct {
	Token string `toml:"token" validate:"required"`
}

type ServerConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr" validate:"required_if=Enabled true"`
}

type TikTokConfig struct {
	FeedURL           string `toml:"feed_url" split_words:"true" validate:"required,url"`
	AvatarURLTemplate string `toml:"avatar_url_template" split_words:"true" validate:"required,contains={uri}"`
	UserAgent         string `toml:"user_agent" split_words:"true"`
}

// HTTPConfig bounds each class of outbound call.
type HTTPConfig struct {
	RedirectTimeout time.Duration `toml:"redirect_timeout" split_words:"true" validate:"gt=0"`
	MetadataTimeout time.Duration `toml:"metadata_timeout" split_words:"true" validate:"gt=0"`
	MediaTimeout    time.Duration `toml:"media_timeout" split_words:"true" validate:"gt=0"`
	ReplyTimeout    time.Duration `toml:"reply_timeout" split_words:"true" validate:"gt=0"`
}

type MediaConfig struct {
	MaxBytes int64 `toml:"max_bytes" split_words:"true" validate:"gt=0"`
}

type PipelineConfig struct {
	Timeout time.Duration `toml:"timeout" validate:"gt=0"`
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Enabled: true,
			Addr:    DefaultHTTPAddr,
		},
		TikTok: TikTokConfig{
			FeedURL:           tiktok.DefaultFeedURL,
			AvatarURLTemplate: tiktok.DefaultAvatarURLTemplate,
			UserAgent:         DefaultUserAgent,
		},
		HTTP: HTTPConfig{
			RedirectTimeout: DefaultRedirectTimeout,
			MetadataTimeout: DefaultMetadataTimeout,
			MediaTimeout:    DefaultMediaTimeout,
			ReplyTimeout:    DefaultReplyTimeout,
		},
		Media: MediaConfig{
			MaxBytes: media.MaxAssetBytes,
		},
		Pipeline: PipelineConfig{
			Timeout: DefaultPipelineTimeout,
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file at path
// and the environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: decode %s: %w", ErrConfigInvalid, path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("%w: environment: %w", ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges and required settings.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: load %s: %w", ErrConfigInvalid, path, err)
	}
	return nil
}
