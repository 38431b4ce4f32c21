// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\valuation\handler.go
package valuation

import (
	"net/http"
	"prodledger/render"

	"github.com/jmoiron/sqlx"
)

// GetRecipeCostHandler は製品レシピの原価を返します。
func GetRecipeCostHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		cost, err := RecipeCost(conn, productID)
		if err != nil {
			render.Error(w, err, "failed to calculate recipe cost")
			return
		}
		render.JSON(w, http.StatusOK, cost)
	}
}
