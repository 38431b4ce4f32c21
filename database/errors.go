package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
)

// IsUniqueViolation は UNIQUE / PRIMARY KEY 制約違反かどうかを判定します。
func IsUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// writeError は書き込みエラーを分類してラップします。
// 呼び出し側は errors.Is(err, ErrDuplicate) で重複を判別できます。
func writeError(err error, msg string) error {
	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", msg, ErrDuplicate, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: referenced row does not exist: %w: %w", msg, ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

// requireAffected は UPDATE/DELETE が1行以上に作用したことを確認します。
func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
