package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sadopc/qrpop/internal/config"
	"github.com/sadopc/qrpop/internal/logging"
)

func TestOpenHistory_SQLiteRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	store, closeHist, err := openHistory(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("openHistory: %v", err)
	}
	if _, err := store.Record(context.Background(), "persisted"); err != nil {
		t.Fatal(err)
	}
	closeHist()

	store, closeHist, err = openHistory(cfg, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer closeHist()
	list, _ := store.Load(context.Background())
	if len(list) != 1 || list[0].Text != "persisted" {
		t.Errorf("unexpected history %v", list.Texts())
	}
}

func TestOpenHistory_UnknownBackendFallsBackToMemory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage = "redis"

	store, closeHist, err := openHistory(cfg, logging.Discard())
	defer closeHist()
	if err == nil {
		t.Error("expected error for unknown backend")
	}
	if store == nil {
		t.Fatal("expected a usable store")
	}
	if _, err := store.Record(context.Background(), "x"); err != nil {
		t.Errorf("memory fallback should accept writes: %v", err)
	}
}

func TestDownloadDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DownloadDir = filepath.Join("some", "dir")
	if downloadDir(cfg) != cfg.DownloadDir {
		t.Errorf("expected configured dir")
	}
	cfg.DownloadDir = ""
	if downloadDir(cfg) == "" {
		t.Error("expected default dir")
	}
}
