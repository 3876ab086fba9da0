package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thinking_edu_backend/internal/config"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}
	ctx := context.Background()

	url, err := p.Upload(ctx, "avatars/7.png", strings.NewReader("png-bytes"), 9, "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "/uploads/avatars/7.png" {
		t.Errorf("url = %q, want /uploads/avatars/7.png", url)
	}

	rc, err := p.Get(ctx, "avatars/7.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("content = %q, want png-bytes", data)
	}
}

func TestLocalStorageUploadOverwrites(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}
	ctx := context.Background()

	if _, err := p.Upload(ctx, "avatars/1.jpg", strings.NewReader("old"), 3, "image/jpeg"); err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	if _, err := p.Upload(ctx, "avatars/1.jpg", strings.NewReader("new"), 3, "image/jpeg"); err != nil {
		t.Fatalf("second Upload: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "1.jpg"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}
}

func TestLocalStorageGetMissing(t *testing.T) {
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}
	if _, err := p.Get(context.Background(), "no-such-object.json"); err == nil {
		t.Fatal("expected error for missing object")
	}
}
