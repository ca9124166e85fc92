package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv     string `mapstructure:"app_env"`
	APIBaseURL string `mapstructure:"api_base_url"`
	Port       string `mapstructure:"port"`

	ChatPollInterval  time.Duration `mapstructure:"chat_poll_interval"`
	StatsPollInterval time.Duration `mapstructure:"stats_poll_interval"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`

	StateDir               string   `mapstructure:"state_dir"`
	CheckoutRequiredFields []string `mapstructure:"checkout_required_fields"`

	JWTSecret string `mapstructure:"jwt_secret"`
	JWTExpiry string `mapstructure:"jwt_expiry"`
	OriginURL string `mapstructure:"origin_url"`

	CloudinaryURL       string `mapstructure:"cloudinary_url"`
	CloudinaryCloudName string `mapstructure:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `mapstructure:"cloudinary_api_key"`
	CloudinaryAPISecret string `mapstructure:"cloudinary_api_secret"`
	MaxUploadSize       int64  `mapstructure:"max_upload_size"`

	DevUserEmail     string `mapstructure:"dev_user_email"`
	DevUserPassword  string `mapstructure:"dev_user_password"`
	DevAdminEmail    string `mapstructure:"dev_admin_email"`
	DevAdminPassword string `mapstructure:"dev_admin_password"`
}

// LoadConfig reads .env and the process environment, then overlays the YAML
// file at path when one is given (or STOREFRONT_CONFIG is set).
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	cfg := &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		APIBaseURL:             getEnv("API_BASE_URL", "http://localhost:5000"),
		Port:                   getEnv("APP_PORT", getEnv("PORT", "5000")),
		ChatPollInterval:       getDuration("CHAT_POLL_INTERVAL", 1500*time.Millisecond),
		StatsPollInterval:      getDuration("STATS_POLL_INTERVAL", 5*time.Second),
		RequestTimeout:         getDuration("REQUEST_TIMEOUT", 10*time.Second),
		StateDir:               getEnv("STATE_DIR", defaultStateDir()),
		CheckoutRequiredFields: splitList(os.Getenv("CHECKOUT_REQUIRED_FIELDS")),
		JWTSecret:              getEnv("JWT_SECRET", "secret"),
		JWTExpiry:              getEnv("JWT_EXPIRY", "24h"),
		OriginURL:              os.Getenv("ORIGIN_URL"),
		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		MaxUploadSize:          maxUploadSize,
		DevUserEmail:           getEnv("DEV_USER_EMAIL", "customer@example.com"),
		DevUserPassword:        getEnv("DEV_USER_PASSWORD", "customer123"),
		DevAdminEmail:          getEnv("DEV_ADMIN_EMAIL", "admin@example.com"),
		DevAdminPassword:       getEnv("DEV_ADMIN_PASSWORD", "admin123"),
	}

	if path == "" {
		path = os.Getenv("STOREFRONT_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Environment: %s", cfg.AppEnv)
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.ChatPollInterval <= 0 || c.StatsPollInterval <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}

// SessionDBPath is the sqlite file holding the guest id and bearer token.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.StateDir, "session.db")
}

// TokenExpiry parses JWTExpiry, falling back to 24h when it is malformed.
func (c *Config) TokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiry)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func (c *Config) CloudinaryConfigured() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func loadFile(path string, cfg *Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}
