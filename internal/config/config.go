package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Refresh RefreshConfig
	Notice  NoticeConfig
	Token   TokenConfig
	Redis   RedisConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

type RefreshConfig struct {
	Interval time.Duration
}

type NoticeConfig struct {
	TTL time.Duration
}

type TokenConfig struct {
	Store string
	File  string
	Key   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	File string
}

const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

func Load() (*Config, error) {
	// Load .env if it exists, ignore if not
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:   getEnv("API_BASE_URL", "http://localhost:5000/api"),
			Timeout:   getEnvAsDuration("API_TIMEOUT", 15*time.Second),
			RateLimit: getEnvAsFloat("API_RATE_LIMIT", 5),
			RateBurst: getEnvAsInt("API_RATE_BURST", 10),
		},
		Refresh: RefreshConfig{
			Interval: getEnvAsDuration("REFRESH_INTERVAL", 30*time.Second),
		},
		Notice: NoticeConfig{
			TTL: getEnvAsDuration("NOTICE_TTL", 5*time.Second),
		},
		Token: TokenConfig{
			Store: getEnv("TOKEN_STORE", TokenStoreFile),
			File:  getEnv("TOKEN_FILE", defaultTokenFile()),
			Key:   getEnv("TOKEN_KEY", "token"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			File: getEnv("LOG_FILE", "autocare.log"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if c.API.RateLimit <= 0 || c.API.RateBurst <= 0 {
		return fmt.Errorf("API_RATE_LIMIT and API_RATE_BURST must be positive")
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	if c.Notice.TTL <= 0 {
		return fmt.Errorf("NOTICE_TTL must be positive")
	}
	if c.Token.Key == "" {
		return fmt.Errorf("TOKEN_KEY cannot be empty")
	}

	switch c.Token.Store {
	case TokenStoreFile:
		if c.Token.File == "" {
			return fmt.Errorf("TOKEN_FILE cannot be empty when TOKEN_STORE=file")
		}
	case TokenStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR cannot be empty when TOKEN_STORE=redis")
		}
	case TokenStoreMemory:
	default:
		return fmt.Errorf("unknown TOKEN_STORE %q", c.Token.Store)
	}

	return nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".autocare-token"
	}
	return dir + string(os.PathSeparator) + "autocare" + string(os.PathSeparator) + "token"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
