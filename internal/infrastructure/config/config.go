package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/reelgate-inc/reelgate/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Payment   sharedConfig.PaymentConfig   `mapstructure:"payment"`
	Video     sharedConfig.VideoConfig     `mapstructure:"video"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Notifier  sharedConfig.NotifierConfig  `mapstructure:"notifier"`
	Content   sharedConfig.ContentConfig   `mapstructure:"content"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configPath when set) and REELGATE_* environment overrides.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("REELGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "reelgate_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.migration_tool", "goose")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("auth.admin_users", []string{})

	v.SetDefault("payment.provider", "stripe")
	v.SetDefault("payment.success_url", "http://localhost:3000/purchase/success?session_id={CHECKOUT_SESSION_ID}")
	v.SetDefault("payment.cancel_url", "http://localhost:3000/purchase/cancelled")
	v.SetDefault("payment.checkout_ttl_minutes", 60)

	v.SetDefault("video.region", "us-east-1")
	v.SetDefault("video.key_prefix", "videos/")
	v.SetDefault("video.key_suffix", "/master.m3u8")
	v.SetDefault("video.url_ttl_seconds", 3600)

	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "noreply@reelgate.local")
	v.SetDefault("email.from_name", "Reelgate")
	v.SetDefault("email.templates_dir", "./configs/email")

	v.SetDefault("notifier.enabled", true)
	v.SetDefault("notifier.interval_minutes", 60)

	v.SetDefault("content.catalog_path", "./configs/content.yaml")

	v.SetDefault("ratelimit.playback_per_minute", 30)
	v.SetDefault("ratelimit.webhook_per_minute", 600)
}
