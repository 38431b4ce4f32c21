// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\pricing\pricing.go
package pricing

import (
	"prodledger/database"
	"prodledger/model"
)

// GetMonthlyPrice はその月の上書き価格を返し、なければ製品の基準価格を返します。
func GetMonthlyPrice(db database.DBTX, productID int64, year, month int) (float64, error) {
	if err := database.ValidatePeriod(year, month); err != nil {
		return 0, err
	}
	return database.GetEffectivePrice(db, productID, year, month)
}

// SetMonthlyPrice はその月だけの価格を設定します。他の月は基準価格のままです。
func SetMonthlyPrice(db database.DBTX, productID int64, year, month int, price float64) error {
	if _, err := database.GetProductByID(db, productID); err != nil {
		return err
	}
	return database.UpsertMonthlyPrice(db, model.MonthlyPrice{
		ProductID: productID,
		Year:      year,
		Month:     month,
		Price:     price,
	})
}
