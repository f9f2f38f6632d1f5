package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string `validate:"required"`
	Port        string `validate:"required"`

	// Resume blob storage (S3-compatible)
	S3Endpoint      string `validate:"required"`
	S3AccessKey     string `validate:"required"`
	S3SecretKey     string `validate:"required"`
	S3Bucket        string `validate:"required"`
	S3Prefix        string
	S3PublicBaseURL string `validate:"required,url"`
	S3UseSSL        bool

	// Cap on simultaneously processed files per bulk upload
	UploadConcurrency int `validate:"min=1"`

	// Candidate notification (optional; disabled when SMTPHost is empty)
	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	MeetingBaseURL string
}

// Load reads the environment (plus an optional .env file) into a validated
// Config.
func Load() (*Config, error) {
	// .env is a development convenience; absence is fine
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              getenv("PORT", "8080"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKey:       os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:       os.Getenv("S3_SECRET_KEY"),
		S3Bucket:          getenv("S3_BUCKET", "resumes"),
		S3Prefix:          getenv("S3_PREFIX", "resumes"),
		S3PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		S3UseSSL:          os.Getenv("S3_USE_SSL") == "true",
		UploadConcurrency: getenvInt("UPLOAD_CONCURRENCY", 8),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getenv("SMTP_PORT", "587"),
		SMTPFrom:          os.Getenv("SMTP_FROM"),
		MeetingBaseURL:    getenv("MEETING_BASE_URL", "https://meet.example.com/talent"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
