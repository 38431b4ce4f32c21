// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\database\db.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DBTX は *sqlx.DB と *sqlx.Tx の共通インターフェースです。
type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Queryx(query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Rebind(query string) string
	Exec(query string, args ...interface{}) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
}

// Open はファイルDBを開きます。接続は1本に固定し、書き込みを直列化します。
// foreign_keys は DSN で指定するため、再接続後も必ず有効になります。
func Open(path string) (*sqlx.DB, error) {
	return open(path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
}

// OpenMemory はテスト用のインメモリDBを開きます。
func OpenMemory() (*sqlx.DB, error) {
	return open(":memory:?_foreign_keys=on")
}

func open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// ApplySchema は SchemaSQL を実行します。何度実行しても安全です。
func ApplySchema(db *sqlx.DB) error {
	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
