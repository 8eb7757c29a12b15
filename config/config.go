package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Catalog backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port            int
	LogLevel        string
	LogPretty       bool
	JWTSecret       string
	SessionTTL      time.Duration
	RefreshTTL      time.Duration
	CatalogCacheTTL time.Duration
	Store           string // postgres or memory

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// RedisAddr empty keeps sessions in process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment, after loading .env if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("LOG_PRETTY", false),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RefreshTTL:      getEnvAsDuration("REFRESH_TTL", 7*24*time.Hour),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		Store:           getEnv("STORE", StorePostgres),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", "fund_insights"),
		DBPort:          getEnv("DB_PORT", "5432"),
		RedisAddr:       getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Store != StorePostgres && c.Store != StoreMemory {
		return fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.SessionTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("SESSION_TTL and REFRESH_TTL must be positive")
	}
	return nil
}

// DSN is the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// InitDB opens the PostgreSQL connection.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// InitRedis connects to Redis and checks it answers.
func InitRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return rdb, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
