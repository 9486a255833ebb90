// Package config reads process configuration from the environment and the
// optional rule-set overlay file.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // MAINTGRAPH_DATABASE_URL (takes precedence over DataDir)
	DataDir     string // MAINTGRAPH_DATA_DIR (JSON collection directory)
	HTTPAddr    string // MAINTGRAPH_HTTP_ADDR (default ":8080")
	NATSURL     string // MAINTGRAPH_NATS_URL (optional, empty = no events)
	AuthToken   string // MAINTGRAPH_AUTH_TOKEN (optional, empty = auth disabled)
	RulesFile   string // MAINTGRAPH_RULES_FILE (optional TOML overlay)

	// Export settings
	ExportInterval   time.Duration // MAINTGRAPH_EXPORT_INTERVAL (default 0 = disabled)
	ExportS3Bucket   string        // MAINTGRAPH_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint string        // MAINTGRAPH_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string        // MAINTGRAPH_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string        // MAINTGRAPH_EXPORT_S3_KEY (default "maintgraph/graph.jsonl")
	ExportGitRepo    string        // MAINTGRAPH_EXPORT_GIT_REPO (enables git when set; path to clone)
	ExportGitFile    string        // MAINTGRAPH_EXPORT_GIT_FILE (default "graph.jsonl")
	ExportGitBranch  string        // MAINTGRAPH_EXPORT_GIT_BRANCH (default "main")
	ExportFile       string        // MAINTGRAPH_EXPORT_FILE (enables a local file when set)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("MAINTGRAPH_DATABASE_URL"),
		DataDir:          os.Getenv("MAINTGRAPH_DATA_DIR"),
		HTTPAddr:         envOrDefault("MAINTGRAPH_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("MAINTGRAPH_NATS_URL"),
		AuthToken:        os.Getenv("MAINTGRAPH_AUTH_TOKEN"),
		RulesFile:        os.Getenv("MAINTGRAPH_RULES_FILE"),
		ExportS3Bucket:   os.Getenv("MAINTGRAPH_EXPORT_S3_BUCKET"),
		ExportS3Endpoint: os.Getenv("MAINTGRAPH_EXPORT_S3_ENDPOINT"),
		ExportS3Region:   envOrDefault("MAINTGRAPH_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("MAINTGRAPH_EXPORT_S3_KEY", "maintgraph/graph.jsonl"),
		ExportGitRepo:    os.Getenv("MAINTGRAPH_EXPORT_GIT_REPO"),
		ExportGitFile:    envOrDefault("MAINTGRAPH_EXPORT_GIT_FILE", "graph.jsonl"),
		ExportGitBranch:  envOrDefault("MAINTGRAPH_EXPORT_GIT_BRANCH", "main"),
		ExportFile:       os.Getenv("MAINTGRAPH_EXPORT_FILE"),
	}
	if c.DatabaseURL == "" && c.DataDir == "" {
		return nil, fmt.Errorf("MAINTGRAPH_DATABASE_URL or MAINTGRAPH_DATA_DIR is required")
	}

	intervalStr := envOrDefault("MAINTGRAPH_EXPORT_INTERVAL", "0")
	d, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("MAINTGRAPH_EXPORT_INTERVAL: %w", err)
	}
	if d < 0 {
		return nil, fmt.Errorf("MAINTGRAPH_EXPORT_INTERVAL must not be negative")
	}
	c.ExportInterval = d

	return c, nil
}

// HasExportDestination reports whether at least one export target is configured.
func (c *Config) HasExportDestination() bool {
	return c.ExportS3Bucket != "" || c.ExportGitRepo != "" || c.ExportFile != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
