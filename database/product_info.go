package database

import (
	"fmt"
	"prodledger/model"
	"strings"
)

func GetProductInfoByProduct(dbtx DBTX, productID int64) ([]model.ProductInfo, error) {
	infos := []model.ProductInfo{}
	const q = `SELECT id, p_id, name, unit, value FROM product_info WHERE p_id = ? ORDER BY name`
	if err := dbtx.Select(&infos, q, productID); err != nil {
		return nil, fmt.Errorf("failed to get product info for product %d: %w", productID, err)
	}
	return infos, nil
}

// AddProductInfo は属性を追加します。同名属性が既にあれば ErrDuplicate です。
func AddProductInfo(dbtx DBTX, productID int64, name, unit string, value float64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("info name is required: %w", ErrInvalidInput)
	}
	const q = `INSERT INTO product_info (p_id, name, unit, value) VALUES (?, ?, ?, ?)`
	res, err := dbtx.Exec(q, productID, name, unit, value)
	if err != nil {
		return 0, writeError(err, "AddProductInfo failed")
	}
	return res.LastInsertId()
}

func UpdateProductInfo(dbtx DBTX, id int64, name, unit string, value float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("info name is required: %w", ErrInvalidInput)
	}
	res, err := dbtx.Exec(`UPDATE product_info SET name = ?, unit = ?, value = ? WHERE id = ?`, name, unit, value, id)
	if err != nil {
		return writeError(err, "UpdateProductInfo failed")
	}
	return requireAffected(res, "product info", id)
}

func DeleteProductInfo(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM product_info WHERE id = ?`, id)
	if err != nil {
		return writeError(err, "DeleteProductInfo failed")
	}
	return requireAffected(res, "product info", id)
}

func GetProductWithInfo(dbtx DBTX, productID int64) (*model.ProductWithInfo, error) {
	p, err := GetProductByID(dbtx, productID)
	if err != nil {
		return nil, err
	}
	infos, err := GetProductInfoByProduct(dbtx, productID)
	if err != nil {
		return nil, err
	}
	return &model.ProductWithInfo{Product: *p, Infos: infos}, nil
}
