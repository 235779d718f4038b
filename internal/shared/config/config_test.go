package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "CORS_ALLOW_ORIGINS", "AWS_REGION", "UPLOAD_BUCKET_NAME", "UPLOAD_BACKEND", "EXTRACTION_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected default env dev, got %q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Fatalf("expected permissive CORS default, got %v", cfg.CORSAllowOrigins)
	}
	if cfg.AWSRegion != "us-east-1" {
		t.Fatalf("expected default region us-east-1, got %q", cfg.AWSRegion)
	}
	if cfg.UploadBucket != "demo-bucket-bacash" {
		t.Fatalf("expected fallback bucket, got %q", cfg.UploadBucket)
	}
	if cfg.UploadBackend != "s3" || cfg.ExtractionBackend != "textract" {
		t.Fatalf("expected real backends by default, got %q/%q", cfg.UploadBackend, cfg.ExtractionBackend)
	}
}

func TestLoadMemoryBackends(t *testing.T) {
	t.Setenv("UPLOAD_BACKEND", "memory")
	t.Setenv("EXTRACTION_BACKEND", "fake")

	cfg := Load()

	if cfg.UploadBackend != "memory" {
		t.Fatalf("expected memory upload backend, got %q", cfg.UploadBackend)
	}
	if cfg.ExtractionBackend != "memory" {
		t.Fatalf("expected memory extraction backend, got %q", cfg.ExtractionBackend)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" http://a.example , ,http://b.example ")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("unexpected result %v", got)
	}
}
