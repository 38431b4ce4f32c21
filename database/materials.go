// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\database\materials.go
package database

import (
	"database/sql"
	"fmt"
	"prodledger/model"
	"strings"

	"github.com/jmoiron/sqlx"
)

// code は NULL 許容の UNIQUE 列なので、空文字は NULL として保存し読み出し時に戻します。
const materialColumns = `id, name, price, COALESCE(code, '') AS code, unit, type`

// materialSearchLimit は検索結果の上限件数です。
const materialSearchLimit = 50

func GetAllMaterials(dbtx DBTX) ([]model.Material, error) {
	materials := []model.Material{}
	if err := dbtx.Select(&materials, `SELECT `+materialColumns+` FROM materials ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("failed to get all materials: %w", err)
	}
	return materials, nil
}

func GetMaterialsByType(dbtx DBTX, materialType string) ([]model.Material, error) {
	if materialType != model.MaterialTypeRM && materialType != model.MaterialTypePM {
		return nil, fmt.Errorf("unknown material type %q: %w", materialType, ErrInvalidInput)
	}
	materials := []model.Material{}
	q := `SELECT ` + materialColumns + ` FROM materials WHERE type = ? ORDER BY name, id`
	if err := dbtx.Select(&materials, q, materialType); err != nil {
		return nil, fmt.Errorf("failed to get materials of type %s: %w", materialType, err)
	}
	return materials, nil
}

// GetGroupedMaterials は RM / PM に分けた資材一覧を返します。
func GetGroupedMaterials(dbtx DBTX) (*model.GroupedMaterials, error) {
	all, err := GetAllMaterials(dbtx)
	if err != nil {
		return nil, err
	}
	grouped := &model.GroupedMaterials{RM: []model.Material{}, PM: []model.Material{}}
	for _, m := range all {
		if m.Type == model.MaterialTypePM {
			grouped.PM = append(grouped.PM, m)
		} else {
			grouped.RM = append(grouped.RM, m)
		}
	}
	return grouped, nil
}

// SearchMaterials は名前またはコードの部分一致で資材を検索します。
func SearchMaterials(dbtx DBTX, term string) ([]model.Material, error) {
	materials := []model.Material{}
	pattern := "%" + strings.TrimSpace(term) + "%"
	q := `SELECT ` + materialColumns + ` FROM materials
		WHERE name LIKE ? OR code LIKE ?
		ORDER BY name, id LIMIT ?`
	if err := dbtx.Select(&materials, q, pattern, pattern, materialSearchLimit); err != nil {
		return nil, fmt.Errorf("failed to search materials: %w", err)
	}
	return materials, nil
}

func GetMaterialByID(dbtx DBTX, id int64) (*model.Material, error) {
	var m model.Material
	err := dbtx.Get(&m, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("material %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material %d: %w", id, err)
	}
	return &m, nil
}

// GetMaterialsByIDs は指定IDの資材を ID をキーにしたマップで返します。
func GetMaterialsByIDs(dbtx DBTX, ids []int64) (map[int64]model.Material, error) {
	result := make(map[int64]model.Material)
	if len(ids) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`SELECT `+materialColumns+` FROM materials WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build IN query for materials: %w", err)
	}
	materials := []model.Material{}
	if err := dbtx.Select(&materials, dbtx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get materials by ids: %w", err)
	}
	for _, m := range materials {
		result[m.ID] = m
	}
	return result, nil
}

// GetMaterialCodeMap は資材コード → 内部ID のマップを返します。コード未設定の資材は含みません。
func GetMaterialCodeMap(dbtx DBTX) (map[string]int64, error) {
	rows, err := dbtx.Query(`SELECT code, id FROM materials WHERE code IS NOT NULL AND code != ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to query material codes: %w", err)
	}
	defer rows.Close()

	codeMap := make(map[string]int64)
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, err
		}
		codeMap[strings.TrimSpace(code)] = id
	}
	return codeMap, rows.Err()
}

func normalizeMaterial(in model.MaterialInput) (model.MaterialInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return in, fmt.Errorf("material name is required: %w", ErrInvalidInput)
	}
	if in.Unit == "" {
		in.Unit = "kg"
	}
	switch in.Type {
	case "":
		in.Type = model.MaterialTypeRM
	case model.MaterialTypeRM, model.MaterialTypePM:
	default:
		return in, fmt.Errorf("unknown material type %q: %w", in.Type, ErrInvalidInput)
	}
	return in, nil
}

func CreateMaterial(dbtx DBTX, in model.MaterialInput) (int64, error) {
	in, err := normalizeMaterial(in)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO materials (name, price, code, unit, type) VALUES (?, ?, NULLIF(?, ''), ?, ?)`
	res, err := dbtx.Exec(q, in.Name, in.Price, in.Code, in.Unit, in.Type)
	if err != nil {
		return 0, writeError(err, "CreateMaterial failed")
	}
	return res.LastInsertId()
}

func UpdateMaterial(dbtx DBTX, id int64, in model.MaterialInput) error {
	in, err := normalizeMaterial(in)
	if err != nil {
		return err
	}
	const q = `UPDATE materials SET name = ?, price = ?, code = NULLIF(?, ''), unit = ?, type = ? WHERE id = ?`
	res, err := dbtx.Exec(q, in.Name, in.Price, in.Code, in.Unit, in.Type, id)
	if err != nil {
		return writeError(err, "UpdateMaterial failed")
	}
	return requireAffected(res, "material", id)
}

// UpsertMaterialByCodeInTx はコードをキーに資材を登録・更新します。カタログ初期投入用です。
func UpsertMaterialByCodeInTx(tx *sqlx.Tx, in model.MaterialInput) error {
	in, err := normalizeMaterial(in)
	if err != nil {
		return err
	}
	if in.Code == "" {
		_, err := CreateMaterial(tx, in)
		return err
	}
	const q = `
		INSERT INTO materials (name, price, code, unit, type) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name, price = excluded.price, unit = excluded.unit, type = excluded.type`
	if _, err := tx.Exec(q, in.Name, in.Price, in.Code, in.Unit, in.Type); err != nil {
		return writeError(err, fmt.Sprintf("failed to upsert material %s", in.Code))
	}
	return nil
}

// DeleteMaterial は資材を削除します。参照するレシピ行は CASCADE で消えます。
func DeleteMaterial(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM materials WHERE id = ?`, id)
	if err != nil {
		return writeError(err, "DeleteMaterial failed")
	}
	return requireAffected(res, "material", id)
}

// CountCatalog は製品数と資材数を返します。初期投入の要否判定に使います。
func CountCatalog(dbtx DBTX) (products int, materials int, err error) {
	if err = dbtx.Get(&products, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, 0, fmt.Errorf("failed to count products: %w", err)
	}
	if err = dbtx.Get(&materials, `SELECT COUNT(*) FROM materials`); err != nil {
		return 0, 0, fmt.Errorf("failed to count materials: %w", err)
	}
	return products, materials, nil
}
