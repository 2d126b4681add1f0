package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxBackups is the number of rolling backups kept per file stem.
const maxBackups = 10

// AtomicWrite replaces path with content via a temp file, fsync, and
// rename, so readers only ever see the old file or the complete new one.
// An existing file is backed up first.
func AtomicWrite(path string, content []byte) error {
	if _, err := os.Stat(path); err == nil {
		if err := createBackup(path); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// createBackup copies path into a backups/ sibling directory with a
// timestamp suffix and prunes old copies of the same stem beyond
// maxBackups.
func createBackup(path string) error {
	backupDir := filepath.Join(filepath.Dir(path), "backups")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read for backup: %w", err)
	}
	stamp := time.Now().Format("20060102_150405.000000000")
	name := filepath.Base(path) + "." + stamp
	if err := os.WriteFile(filepath.Join(backupDir, name), content, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	pruneBackups(backupDir, filepath.Base(path))
	return nil
}

func pruneBackups(backupDir, base string) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), base+".") {
			names = append(names, e.Name())
		}
	}
	// The timestamp suffix makes lexical order chronological.
	sort.Strings(names)
	for len(names) > maxBackups {
		os.Remove(filepath.Join(backupDir, names[0]))
		names = names[1:]
	}
}
