// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\pricing\handler.go
package pricing

import (
	"net/http"
	"prodledger/model"
	"prodledger/render"

	"github.com/jmoiron/sqlx"
)

// GetMonthlyPriceHandler は ?year=&month= の実効価格を返します。
func GetMonthlyPriceHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		year, ok := render.QueryInt(w, r, "year")
		if !ok {
			return
		}
		month, ok := render.QueryInt(w, r, "month")
		if !ok {
			return
		}
		price, err := GetMonthlyPrice(db, productID, year, month)
		if err != nil {
			render.Error(w, err, "failed to get monthly price")
			return
		}
		render.JSON(w, http.StatusOK, model.MonthlyPrice{ProductID: productID, Year: year, Month: month, Price: price})
	}
}

// SetMonthlyPriceHandler はその月の価格を登録・更新します
func SetMonthlyPriceHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var payload model.MonthlyPrice
		if !render.Decode(w, r, &payload) {
			return
		}
		if err := SetMonthlyPrice(db, productID, payload.Year, payload.Month, payload.Price); err != nil {
			render.Error(w, err, "failed to set monthly price")
			return
		}
		render.Message(w, http.StatusOK, "monthly price saved")
	}
}
