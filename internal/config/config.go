// Package config loads linkedroles settings from linkedroles.yaml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/reoring/linkedroles/client"
	"github.com/reoring/linkedroles/tokenstore"
)

// Config is the runtime configuration of the CLI and the example server.
type Config struct {
	ClientID     string       `mapstructure:"client_id"`
	ClientSecret string       `mapstructure:"client_secret"`
	RedirectURI  string       `mapstructure:"redirect_uri"`
	DiscordToken string       `mapstructure:"discord_token"`
	APIBase      string       `mapstructure:"api_base"`
	LogLevel     string       `mapstructure:"log_level"`
	Environment  string       `mapstructure:"environment"`
	Server       ServerConfig `mapstructure:"server"`
	Redis        RedisConfig  `mapstructure:"redis"`
}

// ServerConfig configures the example linked role server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig configures the token store. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Load reads linkedroles.yaml (or file, when non-empty) and overlays the
// environment. Nested keys map to env vars with "_": redis.addr is REDIS_ADDR.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("redirect_uri", "")
	v.SetDefault("discord_token", "")
	v.SetDefault("api_base", client.DefaultAPIBase)
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "production")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", tokenstore.DefaultPrefix)
	v.SetDefault("redis.ttl", "0s")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("linkedroles")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got: %s", cfg.LogLevel)
	}
	if cfg.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative, got: %s", cfg.Redis.TTL)
	}
	if cfg.APIBase != "" && !strings.HasPrefix(cfg.APIBase, "http") {
		return fmt.Errorf("api_base must be an http(s) URL, got: %s", cfg.APIBase)
	}
	return nil
}

// ClientConfig returns the credentials part of cfg.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURI:  c.RedirectURI,
		BotToken:     c.DiscordToken,
	}
}

// ClientOptions returns the client options implied by cfg.
func (c *Config) ClientOptions() []client.Option {
	var opts []client.Option
	if c.APIBase != "" {
		opts = append(opts, client.WithAPIBase(c.APIBase))
	}
	return opts
}

// TokenStoreConfig returns the Redis settings in tokenstore form.
func (c *Config) TokenStoreConfig() tokenstore.RedisConfig {
	return tokenstore.RedisConfig{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		Prefix:   c.Redis.Prefix,
		TTL:      c.Redis.TTL,
	}
}
