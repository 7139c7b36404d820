package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should error on a missing file; callers decide whether that's fatal")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdarena.yaml")
	contents := `
database_url: postgres://localhost/pdarena
port: 9090
workers: 4
request_timeout: 10s
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f.DatabaseURL != "postgres://localhost/pdarena" {
		t.Errorf("DatabaseURL = %q", f.DatabaseURL)
	}
	if f.Port != 9090 {
		t.Errorf("Port = %d", f.Port)
	}
	if f.RequestTimeout.Duration != 10*time.Second {
		t.Errorf("RequestTimeout = %v", f.RequestTimeout.Duration)
	}
}

func TestConfig_Merge_CLIWinsOverFile(t *testing.T) {
	cli := Config{DatabaseURL: "cli-db"}
	file := File{DatabaseURL: "file-db", Port: 1234}

	merged := cli.Merge(file)
	if merged.DatabaseURL != "cli-db" {
		t.Errorf("DatabaseURL = %q, want cli-db to win", merged.DatabaseURL)
	}
	if merged.Port != 1234 {
		t.Errorf("Port = %d, want file value to fill the unset CLI field", merged.Port)
	}
}

func TestConfig_Merge_Defaults(t *testing.T) {
	merged := Config{}.Merge(File{})
	if merged.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", merged.Port, DefaultPort)
	}
	if merged.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want default %d", merged.Workers, DefaultWorkers)
	}
	if merged.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", merged.LogLevel)
	}
	if merged.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want default %v", merged.RequestTimeout, DefaultRequestTimeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("Validate should fail on an empty config")
	}

	valid := Config{DatabaseURL: "db", AuthServiceURL: "auth", SandboxServiceURL: "sandbox"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error on a fully populated config: %v", err)
	}
}
