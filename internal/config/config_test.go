package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DBPath != "./data/finman.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.BackupDir != "./data/backups" {
		t.Errorf("BackupDir = %q, want default", cfg.BackupDir)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FINMAN_DB_PATH", "/tmp/ledger.db")
	t.Setenv("FINMAN_BACKUP_DIR", "/tmp/backups")
	t.Setenv("FINMAN_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.DBPath != "/tmp/ledger.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.BackupDir != "/tmp/backups" {
		t.Errorf("BackupDir = %q", cfg.BackupDir)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{DBPath: filepath.Join(t.TempDir(), "finman.db"), BackupDir: "backups"},
			wantErr: false,
		},
		{
			name:    "empty db path",
			cfg:     Config{DBPath: "", BackupDir: "backups"},
			wantErr: true,
		},
		{
			name:    "empty backup dir",
			cfg:     Config{DBPath: "finman.db", BackupDir: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogLevelFallback(t *testing.T) {
	t.Setenv("FINMAN_LOG_LEVEL", "loud")

	cfg := Load()
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want fallback to info", cfg.LogLevel)
	}
}
