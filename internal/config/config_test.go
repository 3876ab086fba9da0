package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// 下划线键（local_path等）必须按mapstructure标签解码，
// 脚本和应用都依赖这一点。
func TestLoadConfigDecodesUnderscoreKeys(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "data")

	yaml := `server:
  port: "8080"
  mode: debug

jwt:
  secret: test-secret
  expire_hours: 72

storage:
  type: local
  local_path: ` + localPath + `
  minio_access_key: seed-access
  minio_secret_key: seed-secret

catalog:
  object: problems.json
  cache_ttl_minutes: 15

rate_limit:
  max_requests: 100
  window_minutes: 1
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Storage.LocalPath != localPath {
		t.Errorf("Storage.LocalPath = %q, want %q", cfg.Storage.LocalPath, localPath)
	}
	if cfg.Storage.MinioAccessID != "seed-access" {
		t.Errorf("Storage.MinioAccessID = %q, want seed-access", cfg.Storage.MinioAccessID)
	}
	if cfg.Catalog.CacheTTLMinutes != 15 {
		t.Errorf("Catalog.CacheTTLMinutes = %d, want 15", cfg.Catalog.CacheTTLMinutes)
	}
	if cfg.RateLimit.MaxRequests != 100 {
		t.Errorf("RateLimit.MaxRequests = %d, want 100", cfg.RateLimit.MaxRequests)
	}
	if cfg.JWT.ExpireTime != 72*time.Hour {
		t.Errorf("JWT.ExpireTime = %v, want 72h", cfg.JWT.ExpireTime)
	}

	// 本地存储模式下目录应当被创建
	if _, err := os.Stat(localPath); err != nil {
		t.Errorf("local storage dir not created: %v", err)
	}
}
