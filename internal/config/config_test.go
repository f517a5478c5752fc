package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/mgnrega?sslmode=disable")
	t.Setenv("MGNREGA_API_URL", "https://api.data.gov.in/resource/test")
	t.Setenv("TARGET_STATE", "KERALA")
	t.Setenv("BATCH_SIZE", "250")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TargetState != "KERALA" {
		t.Errorf("TargetState = %q, want env override KERALA", cfg.TargetState)
	}
	if cfg.BatchSize != 250 {
		t.Errorf("BatchSize = %d, want 250", cfg.BatchSize)
	}
	if cfg.FinYear != "2024-2025" {
		t.Errorf("FinYear = %q, want default 2024-2025", cfg.FinYear)
	}
	if cfg.FetchLimit != 1000 {
		t.Errorf("FetchLimit = %d, want default 1000", cfg.FetchLimit)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MGNREGA_API_URL", "")
	t.Setenv("TARGET_STATE", "")
	t.Setenv("BATCH_SIZE", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
database_url: postgres://u:p@localhost:5432/mgnrega
api_url: https://api.data.gov.in/resource/test
target_state: MAHARASHTRA
fin_year: 2023-2024
batch_size: 100
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FinYear != "2023-2024" {
		t.Errorf("FinYear = %q, want 2023-2024 from file", cfg.FinYear)
	}
	if cfg.BatchSize != 100 {
		t.Errorf("BatchSize = %d, want 100 from file", cfg.BatchSize)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MGNREGA_API_URL", "")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() error = nil, want validation failure for missing database_url")
	}
}

func TestLoadMissingFileIsOK(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/mgnrega")
	t.Setenv("MGNREGA_API_URL", "https://api.data.gov.in/resource/test")

	if _, err := Load("does-not-exist.yaml"); err != nil {
		t.Fatalf("Load() error = %v, want missing file tolerated", err)
	}
}
