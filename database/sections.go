package database

import (
	"database/sql"
	"fmt"
	"prodledger/model"
	"strings"
)

func GetAllSections(dbtx DBTX) ([]model.Section, error) {
	sections := []model.Section{}
	if err := dbtx.Select(&sections, `SELECT id, name FROM sections ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to get all sections: %w", err)
	}
	return sections, nil
}

// GetSectionsOrderedByName は人員集計用に名前順で部門を返します。
func GetSectionsOrderedByName(dbtx DBTX) ([]model.Section, error) {
	sections := []model.Section{}
	if err := dbtx.Select(&sections, `SELECT id, name FROM sections ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("failed to get sections by name: %w", err)
	}
	return sections, nil
}

func GetSectionByID(dbtx DBTX, id int64) (*model.Section, error) {
	var s model.Section
	err := dbtx.Get(&s, `SELECT id, name FROM sections WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("section %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section %d: %w", id, err)
	}
	return &s, nil
}

func CreateSection(dbtx DBTX, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("section name is required: %w", ErrInvalidInput)
	}
	res, err := dbtx.Exec(`INSERT INTO sections (name) VALUES (?)`, name)
	if err != nil {
		return 0, writeError(err, "CreateSection failed")
	}
	return res.LastInsertId()
}

func UpdateSection(dbtx DBTX, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("section name is required: %w", ErrInvalidInput)
	}
	res, err := dbtx.Exec(`UPDATE sections SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return writeError(err, "UpdateSection failed")
	}
	return requireAffected(res, "section", id)
}

// DeleteSection は部門を削除します。配下の製品と部門人員は CASCADE で消えます。
func DeleteSection(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return writeError(err, "DeleteSection failed")
	}
	return requireAffected(res, "section", id)
}
