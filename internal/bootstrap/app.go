// Package bootstrap wires configuration into constructed, injected
// dependencies. Clients are built here and passed down; no package keeps a
// module-level handle.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/gin-gonic/gin"

	"bacash-backend/internal/extraction"
	"bacash-backend/internal/receipts"
	"bacash-backend/internal/shared/config"
	"bacash-backend/internal/shared/server"
	"bacash-backend/internal/shared/storage/db"
	"bacash-backend/internal/uploads"
)

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Signer    uploads.CredentialSigner
	Analyzer  extraction.ExpenseAnalyzer
	Repo      receipts.Repo
	Processor *extraction.Processor
}

// Build prepares shared dependencies and the HTTP router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	signer, analyzer, err := buildBackends(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo receipts.Repo
	if sqlDB != nil {
		repo = &receipts.PGRepo{DB: sqlDB}
	} else {
		repo = receipts.NewMemoryRepo()
	}

	processor := &extraction.Processor{Analyzer: analyzer, Repo: repo}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Signer:    signer,
		Analyzer:  analyzer,
		Repo:      repo,
		Processor: processor,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Uploads:  uploads.NewHandler(signer),
		Events:   extraction.NewHandler(processor),
		Receipts: receipts.NewHandler(repo),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildBackends selects real AWS-backed or in-memory implementations per
// config. The AWS config is loaded once and shared by both clients.
func buildBackends(ctx context.Context, cfg config.Config) (uploads.CredentialSigner, extraction.ExpenseAnalyzer, error) {
	var signer uploads.CredentialSigner
	var analyzer extraction.ExpenseAnalyzer

	needAWS := cfg.UploadBackend == "s3" || cfg.ExtractionBackend == "textract"

	if needAWS {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		if cfg.UploadBackend == "s3" {
			client := s3.NewFromConfig(awsCfg)
			signer = uploads.NewS3Signer(s3.NewPresignClient(client), cfg.UploadBucket)
		}
		if cfg.ExtractionBackend == "textract" {
			analyzer = extraction.NewTextractAnalyzer(textract.NewFromConfig(awsCfg))
		}
	}

	if signer == nil {
		signer = uploads.NewMemorySigner(cfg.UploadBucket, cfg.AWSRegion)
	}
	if analyzer == nil {
		analyzer = extraction.NewMemoryAnalyzer()
	}
	return signer, analyzer, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
