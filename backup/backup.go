// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\backup\backup.go
package backup

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"prodledger/database"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const timestampLayout = "20060102_150405"

// Manager はバックアップ・リストアの排他区間を管理します。
// 台帳の全操作は Guard の共有ロック内で動き、Backup / Restore は排他ロックを取ります。
type Manager struct {
	mu     sync.RWMutex
	db     *sqlx.DB
	dbPath string
	dir    string
	now    func() time.Time
}

// NewManager は db (dbPath で開いたもの) のバックアップを dir に作る Manager を返します。
func NewManager(db *sqlx.DB, dbPath, dir string) *Manager {
	return &Manager{db: db, dbPath: dbPath, dir: dir, now: time.Now}
}

// Guard は h を共有ロック内で実行します。
func (m *Manager) Guard(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		h.ServeHTTP(w, r)
	})
}

// Backup はデータベースを dest へ VACUUM INTO で書き出します。
// dest が空なら dir に prodledger_YYYYMMDD_HHMMSS.db を作ります。
func (m *Manager) Backup(dest string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dest == "" {
		if err := os.MkdirAll(m.dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		dest = filepath.Join(m.dir, fmt.Sprintf("prodledger_%s.db", m.now().Format(timestampLayout)))
	}
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("backup target %s: %w", dest, database.ErrDuplicate)
	}
	if _, err := m.db.Exec(`VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("failed to write backup to %s: %w", dest, err)
	}
	zap.S().Infof("Database backed up to %s", dest)
	return dest, nil
}

// Restore は src の内容で稼働中のデータベースを置き換えます。
// src は作業用コピーで整合性検査し、接続を閉じてファイルを差し替えた後、同じ *sqlx.DB を開き直します。
// 検査に失敗した場合、稼働中のデータベースには触れません。
func (m *Manager) Restore(src string) error {
	if m.dbPath == "" || strings.HasPrefix(m.dbPath, ":memory:") {
		return fmt.Errorf("restore needs a file database: %w", database.ErrInvalidInput)
	}
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("backup file %s: %w", src, database.ErrNotFound)
	}
	if info.IsDir() {
		return fmt.Errorf("backup path %s is a directory: %w", src, database.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staged := m.dbPath + ".restore"
	defer removeWithSidecars(staged)
	if err := copyFile(src, staged); err != nil {
		return err
	}
	if err := Verify(staged); err != nil {
		return fmt.Errorf("backup %s: %w", src, err)
	}

	if err := m.db.Close(); err != nil {
		zap.S().Warnf("WARN: closing database before restore: %v", err)
	}
	if err := os.Rename(staged, m.dbPath); err != nil {
		return m.reopen(fmt.Errorf("failed to replace database file: %w", err))
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(m.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			zap.S().Warnf("WARN: could not remove %s%s: %v", m.dbPath, suffix, err)
		}
	}
	if err := m.reopen(nil); err != nil {
		return err
	}
	zap.S().Infof("Database restored from %s", src)
	return nil
}

// reopen は dbPath を開き直して m.db を差し替えます。cause があればそれを返します。
func (m *Manager) reopen(cause error) error {
	conn, err := database.Open(m.dbPath)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	if err := database.ApplySchema(conn); err != nil {
		conn.Close()
		return err
	}
	*m.db = *conn
	return cause
}

// Verify は path が台帳テーブルを持つ SQLite ファイルで、quick_check を通ることを確認します。
// 読み書きモードで開くため、バックアップ原本ではなくコピーに対して呼びます。
func Verify(path string) error {
	conn, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer conn.Close()

	var result string
	if err := conn.Get(&result, `PRAGMA quick_check`); err != nil {
		return fmt.Errorf("not a valid database: %v: %w", err, database.ErrInvalidInput)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed (%s): %w", result, database.ErrInvalidInput)
	}
	var tables int
	if err := conn.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'products'`); err != nil || tables == 0 {
		return fmt.Errorf("no ledger tables: %w", database.ErrInvalidInput)
	}
	return nil
}

func removeWithSidecars(path string) {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			zap.S().Warnf("WARN: could not remove %s: %v", p, err)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
