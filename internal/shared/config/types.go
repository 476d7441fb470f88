package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	// MigrationTool is one of goose, golang-migrate or automigrate.
	MigrationTool   string `mapstructure:"migration_tool"`
}

// GetDSN returns a MySQL DSN. Times are stored and parsed as UTC.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RedisConfig configures the shared Redis. When disabled, purchase locks are
// process-local and rate limiting is off.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AuthConfig describes how identity-provider tokens are verified.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`

	// AdminUsers are granted the admin role at startup.
	AdminUsers []string `mapstructure:"admin_users"`
}

type PaymentConfig struct {
	Provider           string `mapstructure:"provider"`
	StripeSecretKey    string `mapstructure:"stripe_secret_key"`
	StripeWebhookKey   string `mapstructure:"stripe_webhook_secret"`
	SuccessURL         string `mapstructure:"success_url"`
	CancelURL          string `mapstructure:"cancel_url"`
	CheckoutTTLMinutes int    `mapstructure:"checkout_ttl_minutes"`
}

func (p *PaymentConfig) CheckoutTTL() time.Duration {
	return time.Duration(p.CheckoutTTLMinutes) * time.Minute
}

type VideoConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	KeyPrefix       string `mapstructure:"key_prefix"`
	KeySuffix       string `mapstructure:"key_suffix"`
	URLTTLSeconds   int    `mapstructure:"url_ttl_seconds"`
}

func (v *VideoConfig) URLTTL() time.Duration {
	return time.Duration(v.URLTTLSeconds) * time.Second
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	TemplatesDir string `mapstructure:"templates_dir"`
}

type NotifierConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalMinutes int  `mapstructure:"interval_minutes"`
}

type ContentConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
}

type RateLimitConfig struct {
	PlaybackPerMinute int `mapstructure:"playback_per_minute"`
	WebhookPerMinute  int `mapstructure:"webhook_per_minute"`
}
