package config

import (
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigins  []string
	AWSRegion         string
	UploadBucket      string
	UploadBackend     string
	ExtractionBackend string
	DatabaseURL       string
	QueueURL          string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		// The fallback bucket name is a deployment hazard: set
		// UPLOAD_BUCKET_NAME explicitly in every environment.
		UploadBucket:      getEnv("UPLOAD_BUCKET_NAME", "demo-bucket-bacash"),
		UploadBackend:     normalizeBackend(getEnv("UPLOAD_BACKEND", "s3"), "s3"),
		ExtractionBackend: normalizeBackend(getEnv("EXTRACTION_BACKEND", "textract"), "textract"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		QueueURL:          os.Getenv("BC_SQS_QUEUE_URL"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeBackend(raw, real string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory", "mem", "fake":
		return "memory"
	default:
		return real
	}
}
