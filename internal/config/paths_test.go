package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPaths(t *testing.T) {
	t.Setenv(homeEnvVar, "")
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if !strings.HasSuffix(dataDir, ".notepad") {
		t.Fatalf("unexpected data dir: %s", dataDir)
	}

	configPath, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if !strings.HasSuffix(configPath, filepath.Join(".notepad", "config.toml")) {
		t.Fatalf("unexpected config path: %s", configPath)
	}

	logPath, err := UILogPath()
	if err != nil {
		t.Fatalf("UILogPath: %v", err)
	}
	if !strings.HasSuffix(logPath, filepath.Join(".notepad", "ui.log")) {
		t.Fatalf("unexpected ui log path: %s", logPath)
	}

	dbPath, err := NotesDBPath()
	if err != nil {
		t.Fatalf("NotesDBPath: %v", err)
	}
	if !strings.HasSuffix(dbPath, filepath.Join(".notepad", "notes.db")) {
		t.Fatalf("unexpected db path: %s", dbPath)
	}
}

func TestDataDirHonorsOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv(homeEnvVar, dir)

	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if got != dir {
		t.Fatalf("expected override %q, got %q", dir, got)
	}
}
