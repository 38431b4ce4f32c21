// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\recipe\ledger.go
package recipe

import (
	"errors"
	"fmt"
	"prodledger/database"
	"prodledger/model"

	"github.com/jmoiron/sqlx"
)

// ErrMaterialAlreadyAdded は直接追加で (製品, 資材, 用途) が重複した場合のエラーです。
var ErrMaterialAlreadyAdded = errors.New("material already added for this purpose")

// Add は上書きしない追加経路です。重複は ErrMaterialAlreadyAdded と database.ErrDuplicate の両方に一致します。
func Add(db database.DBTX, r model.Recipe) (int64, error) {
	if err := fillMaterialType(db, &r); err != nil {
		return 0, err
	}
	id, err := database.InsertRecipe(db, r)
	if errors.Is(err, database.ErrDuplicate) {
		return 0, fmt.Errorf("%w: %w", ErrMaterialAlreadyAdded, err)
	}
	return id, err
}

// Upsert は (製品, 資材, 用途) の行を作成または上書きします。
func Upsert(db database.DBTX, r model.Recipe) error {
	if err := fillMaterialType(db, &r); err != nil {
		return err
	}
	return database.UpsertRecipe(db, r)
}

// fillMaterialType は資材区分が省略された場合に資材マスタから補います。
func fillMaterialType(db database.DBTX, r *model.Recipe) error {
	if r.MaterialType != "" {
		return nil
	}
	m, err := database.GetMaterialByID(db, r.MaterialID)
	if err != nil {
		return err
	}
	r.MaterialType = m.Type
	return nil
}

// BulkInsert は複数行を1トランザクションで追加します。1行でも失敗すれば何も書き込みません。
func BulkInsert(db *sqlx.DB, recipes []model.Recipe) (int, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range recipes {
		if err := fillMaterialType(tx, &recipes[i]); err != nil {
			return 0, err
		}
	}
	if err := database.InsertRecipesInTx(tx, recipes); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit recipes: %w", err)
	}
	return len(recipes), nil
}

// Replace は製品の全レシピ行を recipes で置き換えます。
func Replace(db *sqlx.DB, productID int64, recipes []model.Recipe) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := database.GetProductByID(tx, productID); err != nil {
		return err
	}
	if _, err := database.DeleteRecipesByProduct(tx, productID); err != nil {
		return err
	}
	for i := range recipes {
		recipes[i].ProductID = productID
		if err := fillMaterialType(tx, &recipes[i]); err != nil {
			return err
		}
		if err := database.UpsertRecipe(tx, recipes[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}
