// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\database\recipes.go
package database

import (
	"database/sql"
	"fmt"
	"prodledger/model"

	"github.com/jmoiron/sqlx"
)

const recipeViewSelect = `
	SELECT
		r.id, r.p_id, r.m_id, r.quantity, r.purpose, r.m_type,
		COALESCE(m.name, '')  AS material_name,
		COALESCE(m.unit, '')  AS material_unit,
		COALESCE(m.type, '')  AS material_type,
		COALESCE(m.code, '')  AS material_code,
		COALESCE(m.price, 0)  AS material_price,
		COALESCE(p.name, '')  AS product_name
	FROM recipes r
	LEFT JOIN materials m ON r.m_id = m.id
	LEFT JOIN products p ON r.p_id = p.id`

// ValidatePurpose / ValidateMaterialType は列挙値を検証します。
func ValidatePurpose(purpose string) error {
	if purpose != model.PurposeBatch && purpose != model.PurposeCarton {
		return fmt.Errorf("unknown purpose %q: %w", purpose, ErrInvalidInput)
	}
	return nil
}

func ValidateMaterialType(materialType string) error {
	if materialType != model.MaterialTypeRM && materialType != model.MaterialTypePM {
		return fmt.Errorf("unknown material type %q: %w", materialType, ErrInvalidInput)
	}
	return nil
}

func validateRecipe(r model.Recipe) error {
	if err := ValidatePurpose(r.Purpose); err != nil {
		return err
	}
	if err := ValidateMaterialType(r.MaterialType); err != nil {
		return err
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", ErrInvalidInput)
	}
	return nil
}

// GetRecipesByProduct は資材情報を結合したレシピ行を資材名順で返します。
func GetRecipesByProduct(dbtx DBTX, productID int64) ([]model.RecipeView, error) {
	rows := []model.RecipeView{}
	q := recipeViewSelect + ` WHERE r.p_id = ? ORDER BY m.name, r.id`
	if err := dbtx.Select(&rows, q, productID); err != nil {
		return nil, fmt.Errorf("failed to get recipes for product %d: %w", productID, err)
	}
	return rows, nil
}

func GetRecipesByProductAndPurpose(dbtx DBTX, productID int64, purpose string) ([]model.RecipeView, error) {
	if err := ValidatePurpose(purpose); err != nil {
		return nil, err
	}
	rows := []model.RecipeView{}
	q := recipeViewSelect + ` WHERE r.p_id = ? AND r.purpose = ? ORDER BY m.name, r.id`
	if err := dbtx.Select(&rows, q, productID, purpose); err != nil {
		return nil, fmt.Errorf("failed to get %s recipes for product %d: %w", purpose, productID, err)
	}
	return rows, nil
}

// GetRecipesForImport は取込形式への書き出し用に用途・資材区分・資材名の順で返します。
func GetRecipesForImport(dbtx DBTX, productID int64) ([]model.RecipeView, error) {
	rows := []model.RecipeView{}
	q := recipeViewSelect + ` WHERE r.p_id = ? ORDER BY r.purpose, m.type, m.name, r.id`
	if err := dbtx.Select(&rows, q, productID); err != nil {
		return nil, fmt.Errorf("failed to get recipes for export (product %d): %w", productID, err)
	}
	return rows, nil
}

func GetRecipeByID(dbtx DBTX, id int64) (*model.RecipeView, error) {
	var row model.RecipeView
	err := dbtx.Get(&row, recipeViewSelect+` WHERE r.id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return &row, nil
}

// UpsertRecipe は (製品, 資材, 用途) をキーに登録し、既存なら数量と資材区分を上書きします。
func UpsertRecipe(dbtx DBTX, r model.Recipe) error {
	if err := validateRecipe(r); err != nil {
		return err
	}
	const q = `
		INSERT INTO recipes (p_id, m_id, quantity, purpose, m_type)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(p_id, m_id, purpose) DO UPDATE SET
			quantity = excluded.quantity,
			m_type = excluded.m_type`
	if _, err := dbtx.Exec(q, r.ProductID, r.MaterialID, r.Quantity, r.Purpose, r.MaterialType); err != nil {
		return writeError(err, fmt.Sprintf("failed to upsert recipe (p_id=%d, m_id=%d, %s)", r.ProductID, r.MaterialID, r.Purpose))
	}
	return nil
}

// InsertRecipe は上書きしない登録経路です。キー重複は ErrDuplicate になります。
func InsertRecipe(dbtx DBTX, r model.Recipe) (int64, error) {
	if err := validateRecipe(r); err != nil {
		return 0, err
	}
	const q = `INSERT INTO recipes (p_id, m_id, quantity, purpose, m_type) VALUES (?, ?, ?, ?, ?)`
	res, err := dbtx.Exec(q, r.ProductID, r.MaterialID, r.Quantity, r.Purpose, r.MaterialType)
	if err != nil {
		return 0, writeError(err, "material already added for this purpose")
	}
	return res.LastInsertId()
}

// InsertRecipesInTx はレシピ行を一括登録します。1件でも失敗すれば呼び出し側でロールバックします。
func InsertRecipesInTx(tx *sqlx.Tx, recipes []model.Recipe) error {
	for _, r := range recipes {
		if err := validateRecipe(r); err != nil {
			return err
		}
	}
	stmt, err := tx.Preparex(`INSERT INTO recipes (p_id, m_id, quantity, purpose, m_type) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare recipe insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range recipes {
		if _, err := stmt.Exec(r.ProductID, r.MaterialID, r.Quantity, r.Purpose, r.MaterialType); err != nil {
			return writeError(err, fmt.Sprintf("failed to insert recipe (p_id=%d, m_id=%d, %s)", r.ProductID, r.MaterialID, r.Purpose))
		}
	}
	return nil
}

func UpdateRecipe(dbtx DBTX, id int64, quantity float64, purpose, materialType string) error {
	if err := validateRecipe(model.Recipe{Quantity: quantity, Purpose: purpose, MaterialType: materialType}); err != nil {
		return err
	}
	const q = `UPDATE recipes SET quantity = ?, purpose = ?, m_type = ? WHERE id = ?`
	res, err := dbtx.Exec(q, quantity, purpose, materialType, id)
	if err != nil {
		return writeError(err, "UpdateRecipe failed")
	}
	return requireAffected(res, "recipe", id)
}

func DeleteRecipe(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteRecipe failed: %w", err)
	}
	return requireAffected(res, "recipe", id)
}

// DeleteRecipeByKey は (製品, 資材, 用途) で1行削除します。該当なしは ErrNotFound です。
func DeleteRecipeByKey(dbtx DBTX, productID, materialID int64, purpose string) error {
	res, err := dbtx.Exec(`DELETE FROM recipes WHERE p_id = ? AND m_id = ? AND purpose = ?`, productID, materialID, purpose)
	if err != nil {
		return fmt.Errorf("DeleteRecipeByKey failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("recipe (p_id=%d, m_id=%d, %s): %w", productID, materialID, purpose, ErrNotFound)
	}
	return nil
}

// DeleteRecipesByProduct は製品の全レシピ行を削除し、削除件数を返します。
func DeleteRecipesByProduct(dbtx DBTX, productID int64) (int64, error) {
	res, err := dbtx.Exec(`DELETE FROM recipes WHERE p_id = ?`, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete recipes for product %d: %w", productID, err)
	}
	return res.RowsAffected()
}

// SummarizeRecipes は用途ごとの行数と数量合計を返します。
func SummarizeRecipes(dbtx DBTX, productID int64) ([]model.RecipeSummary, error) {
	summaries := []model.RecipeSummary{}
	const q = `
		SELECT purpose, COUNT(*) AS material_count, COALESCE(SUM(quantity), 0) AS total_quantity
		FROM recipes WHERE p_id = ?
		GROUP BY purpose ORDER BY purpose`
	if err := dbtx.Select(&summaries, q, productID); err != nil {
		return nil, fmt.Errorf("failed to summarize recipes for product %d: %w", productID, err)
	}
	return summaries, nil
}

// CheckMaterialInRecipe は資材がいずれかの用途で製品レシピに含まれるかを返します。
func CheckMaterialInRecipe(dbtx DBTX, productID, materialID int64) (bool, error) {
	var count int
	if err := dbtx.Get(&count, `SELECT COUNT(*) FROM recipes WHERE p_id = ? AND m_id = ?`, productID, materialID); err != nil {
		return false, fmt.Errorf("CheckMaterialInRecipe failed: %w", err)
	}
	return count > 0, nil
}
