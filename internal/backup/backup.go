// Package backup snapshots and restores the SQLite database file.
package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"finman/internal/log"
)

const timestampLayout = "20060102_150405"

// Manager copies the live database file into a backup directory and
// restores previous snapshots. The caller must not have operations in
// flight while restoring.
type Manager struct {
	dbPath    string
	backupDir string
	logger    *log.Logger
}

func NewManager(dbPath, backupDir string) *Manager {
	return &Manager{dbPath: dbPath, backupDir: backupDir, logger: log.ForComponent(log.ComponentBackup)}
}

// Snapshot copies the database to dest. An empty dest picks a
// timestamped file in the backup directory. Returns the written path.
func (m *Manager) Snapshot(dest string) (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database file not found: %w", err)
	}

	if dest == "" {
		if err := os.MkdirAll(m.backupDir, 0755); err != nil {
			return "", fmt.Errorf("create backup directory: %w", err)
		}
		name := fmt.Sprintf("finman_backup_%s.db", time.Now().Format(timestampLayout))
		dest = filepath.Join(m.backupDir, name)
	}

	if err := copyFile(m.dbPath, dest); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	m.logger.Info("Snapshot written", log.FieldOperation, "snapshot", log.FieldPath, dest)
	return dest, nil
}

// Restore replaces the live database with the snapshot at src. The
// snapshot is verified to be a readable SQLite database first, and a
// safety copy of the current file is taken before it is overwritten.
func (m *Manager) Restore(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("invalid backup path: %s is a directory", src)
	}

	if err := verifySQLite(src); err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		safety := filepath.Join(filepath.Dir(m.dbPath),
			fmt.Sprintf("pre_restore_%s.db", time.Now().Format(timestampLayout)))
		if err := copyFile(m.dbPath, safety); err != nil {
			return fmt.Errorf("save current database: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(m.dbPath), 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	if err := copyFile(src, m.dbPath); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}

	m.logger.Info("Database restored", log.FieldOperation, "restore", log.FieldPath, src)
	return nil
}

// List returns the snapshot files in the backup directory, newest
// first. A missing directory yields an empty list.
func (m *Manager) List() ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(m.backupDir, "*.db"))
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	return entries, nil
}

func verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var name string
	row := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' LIMIT 1`)
	if err := row.Scan(&name); err != nil && err != sql.ErrNoRows {
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
