package backup

import (
	"errors"
	"os"
	"path/filepath"
	"prodledger/database"
	"prodledger/model"
	"testing"
	"time"
)

func openFileDB(t *testing.T, path string) *Manager {
	t.Helper()
	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := database.ApplySchema(db); err != nil {
		t.Fatalf("ApplySchema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	m := NewManager(db, path, filepath.Join(filepath.Dir(path), "backups"))
	m.now = func() time.Time { return time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC) }
	return m
}

func TestBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	m := openFileDB(t, filepath.Join(dir, "ledger.db"))

	if _, err := database.CreateSection(m.db, "Biscuit"); err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	dest, err := m.Backup("")
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if filepath.Base(dest) != "prodledger_20260501_093000.db" {
		t.Errorf("backup name: got %s", dest)
	}
	if _, err := m.Backup(dest); !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("existing target: got %v, want ErrDuplicate", err)
	}

	// バックアップ後の変更はリストアで消える
	if _, err := database.CreateSection(m.db, "Cake"); err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	if err := m.Restore(dest); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	sections, err := database.GetAllSections(m.db)
	if err != nil {
		t.Fatalf("GetAllSections after restore: %v", err)
	}
	if len(sections) != 1 || sections[0].Name != "Biscuit" {
		t.Errorf("after restore: got %+v", sections)
	}

	// 再オープン後も外部キーが有効
	if _, err := database.CreateProduct(m.db, model.ProductInput{SectionID: 999, Name: "Orphan"}); !errors.Is(err, database.ErrInvalidInput) {
		t.Errorf("foreign key after restore: got %v, want ErrInvalidInput", err)
	}
}

func TestRestoreRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	m := openFileDB(t, filepath.Join(dir, "ledger.db"))
	if _, err := database.CreateSection(m.db, "Biscuit"); err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	garbage := filepath.Join(dir, "garbage.db")
	if err := os.WriteFile(garbage, []byte("definitely not sqlite"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := m.Restore(garbage); !errors.Is(err, database.ErrInvalidInput) {
		t.Errorf("garbage file: got %v, want ErrInvalidInput", err)
	}
	if err := m.Restore(filepath.Join(dir, "missing.db")); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("missing file: got %v, want ErrNotFound", err)
	}

	// 失敗したリストアは稼働中のDBに触れない
	sections, err := database.GetAllSections(m.db)
	if err != nil || len(sections) != 1 {
		t.Errorf("live database changed: %+v, %v", sections, err)
	}
}

func TestRestoreNeedsFileDatabase(t *testing.T) {
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()
	m := NewManager(db, ":memory:", t.TempDir())
	if err := m.Restore("whatever.db"); !errors.Is(err, database.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
