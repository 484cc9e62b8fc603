package config

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevSecret signs tokens when JWT_SECRET is unset outside production.
const DevSecret = "dev-secret-change-me"

// Config holds application configuration. It is built once at startup and shared read-only.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	News      NewsConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Port           string
	Host           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	TrustedProxies []string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// NewsConfig configures the upstream search provider. An empty APIKey selects demo results.
type NewsConfig struct {
	APIKey   string
	Language string
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

type CORSConfig struct {
	// Origins is the allow-list; empty allows any origin.
	Origins []string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// IsProduction reports whether diagnostics must be withheld from clients.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("NODE_ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", 30)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	viper.SetDefault("MONGODB_DATABASE", "news")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_TOKEN_TTL_HOURS", 168)
	viper.SetDefault("NEWS_API_LANG", "es")
	viper.SetDefault("NEWS_API_URL", "https://newsapi.org/v2/everything")
	viper.SetDefault("NEWS_API_PAGE_SIZE", 10)
	viper.SetDefault("NEWS_API_TIMEOUT", 10)
	// 100 requests per 15 minutes
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 100.0/900.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 900)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("PORT"),
			Host:           viper.GetString("SERVER_HOST"),
			Environment:    viper.GetString("NODE_ENV"),
			ReadTimeout:    time.Duration(viper.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout:   time.Duration(viper.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			TrustedProxies: splitList(viper.GetString("TRUSTED_PROXIES")),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:   os.Getenv("JWT_SECRET"),
			TokenTTL: time.Duration(viper.GetInt("JWT_TOKEN_TTL_HOURS")) * time.Hour,
		},
		News: NewsConfig{
			APIKey:   os.Getenv("NEWS_API_KEY"),
			Language: viper.GetString("NEWS_API_LANG"),
			BaseURL:  viper.GetString("NEWS_API_URL"),
			PageSize: viper.GetInt("NEWS_API_PAGE_SIZE"),
			Timeout:  time.Duration(viper.GetInt("NEWS_API_TIMEOUT")) * time.Second,
		},
		CORS: CORSConfig{
			Origins: splitList(viper.GetString("CORS_ORIGIN")),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if cfg.JWT.Secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWT.Secret = DevSecret
	}
	// the search provider caps pageSize at 100; keep results small
	if cfg.News.PageSize <= 0 || cfg.News.PageSize > 20 {
		cfg.News.PageSize = 10
	}

	return cfg, nil
}

// RedactURI hides userinfo and query options of a connection string for logging.
func RedactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<unparseable>"
	}
	out := u.Scheme + "://"
	if u.User != nil {
		out += "***@"
	}
	out += u.Host + u.Path
	if u.RawQuery != "" {
		out += "?..."
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
