package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestParse_valid(t *testing.T) {
	data := []byte(`
pretty: true
jobs: 4
xmllint:
  path: /usr/bin/xmllint
http:
  timeout: 30s
  retry_max: 0
s3:
  region: eu-central-1
  endpoint: http://localhost:9000
  use_path_style: true
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Pretty {
		t.Error("pretty should be true")
	}
	if cfg.Jobs != 4 {
		t.Errorf("jobs = %d, want 4", cfg.Jobs)
	}
	if cfg.Xmllint.Path != "/usr/bin/xmllint" {
		t.Errorf("xmllint.path = %q", cfg.Xmllint.Path)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("http.timeout = %v, want 30s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.EffectiveRetryMax() != 0 {
		t.Errorf("retry_max = %d, want 0", cfg.HTTP.EffectiveRetryMax())
	}
	if cfg.S3.Region != "eu-central-1" || !cfg.S3.UsePathStyle {
		t.Errorf("s3 = %+v", cfg.S3)
	}
}

func TestParse_defaults(t *testing.T) {
	cfg, err := Parse([]byte(`pretty: true`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Jobs != 1 {
		t.Errorf("jobs = %d, want default 1", cfg.Jobs)
	}
	if cfg.HTTP.Timeout != 60*time.Second {
		t.Errorf("http.timeout = %v, want default 60s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.EffectiveRetryMax() != 3 {
		t.Errorf("retry_max = %d, want default 3", cfg.HTTP.EffectiveRetryMax())
	}
}

func TestParse_invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", ":::invalid"},
		{"jobs", "jobs: 0"},
		{"retry", "http:\n  retry_max: -1"},
		{"timeout", "http:\n  timeout: -5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_missingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Jobs != 1 {
		t.Errorf("jobs = %d, want 1", cfg.Jobs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	retry := 5
	cfg := &Config{Pretty: true, Jobs: 2, HTTP: HTTP{Timeout: 10 * time.Second, RetryMax: &retry}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Jobs != 2 || !loaded.Pretty {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.HTTP.EffectiveRetryMax() != 5 {
		t.Errorf("retry_max = %d, want 5", loaded.HTTP.EffectiveRetryMax())
	}
}
