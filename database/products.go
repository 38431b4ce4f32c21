// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\database\products.go
package database

import (
	"database/sql"
	"fmt"
	"prodledger/model"
	"strings"
)

const productColumns = `p.id, p.s_id, p.name, p.code, p.base_price, p.sku`

// GetAllProducts は部門名を結合した全製品を製品名順で返します。
func GetAllProducts(dbtx DBTX) ([]model.Product, error) {
	products := []model.Product{}
	q := `SELECT ` + productColumns + `, COALESCE(s.name, '') AS section_name
		FROM products p
		LEFT JOIN sections s ON p.s_id = s.id
		ORDER BY p.name, p.id`
	if err := dbtx.Select(&products, q); err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

func GetProductsBySection(dbtx DBTX, sectionID int64) ([]model.Product, error) {
	products := []model.Product{}
	q := `SELECT ` + productColumns + ` FROM products p WHERE p.s_id = ? ORDER BY p.id`
	if err := dbtx.Select(&products, q, sectionID); err != nil {
		return nil, fmt.Errorf("failed to get products for section %d: %w", sectionID, err)
	}
	return products, nil
}

func GetProductByID(dbtx DBTX, id int64) (*model.Product, error) {
	var p model.Product
	err := dbtx.Get(&p, `SELECT `+productColumns+` FROM products p WHERE p.id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

// GetProductByCode は製品コードで製品を引きます。
// コードは一意制約を持たないため、重複時は最も古い行を返します。
func GetProductByCode(dbtx DBTX, code string) (*model.Product, error) {
	code = strings.TrimSpace(code)
	var p model.Product
	err := dbtx.Get(&p, `SELECT `+productColumns+` FROM products p WHERE p.code = ? ORDER BY p.id LIMIT 1`, code)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product with code %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by code %q: %w", code, err)
	}
	return &p, nil
}

func ProductExistsByCode(dbtx DBTX, code string) (bool, error) {
	var exists int
	err := dbtx.QueryRow(`SELECT 1 FROM products WHERE code = ? LIMIT 1`, strings.TrimSpace(code)).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("ProductExistsByCode failed: %w", err)
	}
	return true, nil
}

func validateProduct(in model.ProductInput) error {
	if in.SectionID <= 0 {
		return fmt.Errorf("section is required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("product name is required: %w", ErrInvalidInput)
	}
	return nil
}

func CreateProduct(dbtx DBTX, in model.ProductInput) (int64, error) {
	if err := validateProduct(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO products (s_id, name, code, base_price, sku) VALUES (?, ?, ?, ?, ?)`
	res, err := dbtx.Exec(q, in.SectionID, strings.TrimSpace(in.Name), strings.TrimSpace(in.Code), in.BasePrice, in.SKU)
	if err != nil {
		return 0, writeError(err, "CreateProduct failed")
	}
	return res.LastInsertId()
}

func UpdateProduct(dbtx DBTX, id int64, in model.ProductInput) error {
	if err := validateProduct(in); err != nil {
		return err
	}
	const q = `UPDATE products SET s_id = ?, name = ?, code = ?, base_price = ?, sku = ? WHERE id = ?`
	res, err := dbtx.Exec(q, in.SectionID, strings.TrimSpace(in.Name), strings.TrimSpace(in.Code), in.BasePrice, in.SKU, id)
	if err != nil {
		return writeError(err, "UpdateProduct failed")
	}
	return requireAffected(res, "product", id)
}

// DeleteProduct は製品を削除します。レシピ・属性・日報・月次データは CASCADE で消えます。
func DeleteProduct(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return writeError(err, "DeleteProduct failed")
	}
	return requireAffected(res, "product", id)
}
