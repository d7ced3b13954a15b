package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string `validate:"required"`
	MaxUploadBytes int    `validate:"gt=0"`
	CORSOrigins    string

	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Auth     AuthConfig
	Scraper  ScraperConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	URL string `validate:"required"`
}

type RedisConfig struct {
	Addr     string `validate:"required"`
	Password string
}

type StorageConfig struct {
	Region string
	Bucket string `validate:"required"`
	Prefix string
	// Endpoint overrides the S3 endpoint for compatible stores (R2, MinIO)
	Endpoint     string
	SignedURLTTL time.Duration `validate:"gt=0"`
}

type LLMConfig struct {
	APIKey            string        `validate:"required"`
	BaseURL           string        `validate:"omitempty,url"`
	Model             string        `validate:"required"`
	EmbeddingModel    string        `validate:"required"`
	Timeout           time.Duration `validate:"gt=0"`
	Retry             bool
	RequestsPerMinute int `validate:"gt=0"`
}

type AuthConfig struct {
	JWTSecret string        `validate:"required,min=16"`
	JWTTTL    time.Duration `validate:"gt=0"`
	JWTIssuer string        `validate:"required"`
}

type ScraperConfig struct {
	BaseURL  string `validate:"required,url"`
	MaxPages int    `validate:"gte=1"`
	Workers  int    `validate:"gte=1"`
	// RequestsPerMinute throttles page loads against the job board, 0 disables it
	RequestsPerMinute int `validate:"gte=0"`
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	Format string `validate:"oneof=json pretty"`
}

var validate = validator.New()

// Load reads configuration from the environment, optionally seeded from a .env file
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		MaxUploadBytes: getEnvInt("MAX_UPLOAD_BYTES", 10<<20),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Database: DatabaseConfig{
			URL: databaseURL(),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASS"),
		},
		Storage: StorageConfig{
			Region:       getEnv("AWS_REGION", "us-east-1"),
			Bucket:       getEnv("AWS_BUCKET", "careerpal"),
			Prefix:       getEnv("STORAGE_PREFIX", "careerpal"),
			Endpoint:     os.Getenv("STORAGE_ENDPOINT"),
			SignedURLTTL: getEnvDuration("SIGNED_URL_TTL", time.Hour),
		},
		LLM: LLMConfig{
			APIKey:            os.Getenv("OPENAI_API_KEY"),
			BaseURL:           os.Getenv("LLM_BASE_URL"),
			Model:             getEnv("LLM_MODEL", "gpt-4o-mini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Timeout:           getEnvDuration("LLM_TIMEOUT", 60*time.Second),
			Retry:             getEnvBool("LLM_RETRY", true),
			RequestsPerMinute: getEnvInt("LLM_REQUESTS_PER_MINUTE", 120),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
			JWTIssuer: getEnv("JWT_ISSUER", "careerpal"),
		},
		Scraper: ScraperConfig{
			BaseURL:           getEnv("SCRAPER_BASE_URL", "https://findajob.dwp.gov.uk"),
			MaxPages:          getEnvInt("SCRAPER_MAX_PAGES", 5),
			Workers:           getEnvInt("SCRAPER_WORKERS", 2),
			RequestsPerMinute: getEnvInt("SCRAPER_REQUESTS_PER_MINUTE", 60),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, errx.Wrap(err, "invalid configuration", errx.TypeValidation)
	}
	return cfg, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the DB_* parts
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	if os.Getenv("DB_HOST") == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		getEnv("DB_PORT", "5432"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
