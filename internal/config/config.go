package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ynastt/course-admin/pkg/cache"
	"github.com/ynastt/course-admin/pkg/database"
	"github.com/ynastt/course-admin/pkg/storage"
)

type Config struct {
	ServerPort    string
	LogLevel      slog.Level
	MigrationsDir string

	Postgres database.Config

	// Redis, MinIO and RabbitMQ are optional; an empty address disables them.
	Redis         cache.Config
	TeamsCacheTTL time.Duration
	Minio         storage.Config
	AMQPURL       string

	// PlaybackBaseURL prefixes the HLS playlists of uploaded videos.
	PlaybackBaseURL string
}

// Load reads the environment, after merging an optional .env file into it.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		Postgres: database.Config{
			Host:         getEnv("POSTGRES_HOST", "localhost"),
			Port:         getEnv("POSTGRES_PORT", "5432"),
			Username:     os.Getenv("POSTGRES_USERNAME"),
			Password:     os.Getenv("POSTGRES_PASSWORD"),
			DBName:       os.Getenv("DB_NAME"),
			SSLMode:      getEnv("DB_SSL", "disable"),
			MaxOpenConns: 20,
			MaxIdleConns: 5,
		},
		Redis: cache.Config{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		TeamsCacheTTL: 5 * time.Minute,
		Minio: storage.Config{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "videos"),
		},
		AMQPURL:         os.Getenv("AMQP_URL"),
		PlaybackBaseURL: os.Getenv("S3_BASE_URL"),
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Minio.UseSSL, err = getBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if ttl := os.Getenv("TEAMS_CACHE_TTL"); ttl != "" {
		if cfg.TeamsCacheTTL, err = time.ParseDuration(ttl); err != nil {
			return nil, fmt.Errorf("TEAMS_CACHE_TTL: %w", err)
		}
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) UploadsEnabled() bool {
	return c.Minio.Endpoint != "" && c.AMQPURL != ""
}

func (c *Config) validate() error {
	var missing []string
	if c.Postgres.Username == "" {
		missing = append(missing, "POSTGRES_USERNAME")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.UploadsEnabled() && c.PlaybackBaseURL == "" {
		missing = append(missing, "S3_BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
