// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\valuation\valuation.go
package valuation

import (
	"prodledger/database"
	"prodledger/model"

	"github.com/shopspring/decimal"
)

// RecipeCost は用途ごとの資材原価 (数量 × 資材単価) を計算します。
// 用途が無い場合も batch / carton の両方を 0 で返します。
func RecipeCost(conn database.DBTX, productID int64) (*model.RecipeCost, error) {
	if _, err := database.GetProductByID(conn, productID); err != nil {
		return nil, err
	}
	rows, err := database.GetRecipesByProduct(conn, productID)
	if err != nil {
		return nil, err
	}

	totals := map[string]decimal.Decimal{
		model.PurposeBatch:  decimal.Zero,
		model.PurposeCarton: decimal.Zero,
	}
	result := &model.RecipeCost{
		ProductID: productID,
		Lines: map[string][]model.RecipeCostLine{
			model.PurposeBatch:  {},
			model.PurposeCarton: {},
		},
		Totals: map[string]string{},
	}

	for _, row := range rows {
		cost := decimal.NewFromFloat(row.Quantity).Mul(decimal.NewFromFloat(row.MaterialPrice))
		totals[row.Purpose] = totals[row.Purpose].Add(cost)
		result.Lines[row.Purpose] = append(result.Lines[row.Purpose], model.RecipeCostLine{
			MaterialID:   row.MaterialID,
			MaterialCode: row.MaterialCode,
			MaterialName: row.MaterialName,
			MaterialType: row.MaterialType,
			Quantity:     row.Quantity,
			UnitPrice:    row.MaterialPrice,
			Cost:         cost.StringFixed(4),
		})
	}
	for purpose, total := range totals {
		result.Totals[purpose] = total.StringFixed(4)
	}
	return result, nil
}
