package production

import (
	"net/http"
	"prodledger/render"

	"github.com/jmoiron/sqlx"
)

// GetDailyProductionHandler は ?section_id=&month=&year= の日報グリッドを返します。
func GetDailyProductionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID, ok := render.QueryInt(w, r, "section_id")
		if !ok {
			return
		}
		month, ok := render.QueryInt(w, r, "month")
		if !ok {
			return
		}
		year, ok := render.QueryInt(w, r, "year")
		if !ok {
			return
		}
		entries, err := GetDailyProduction(db, int64(sectionID), month, year)
		if err != nil {
			render.Error(w, err, "failed to get daily production")
			return
		}
		render.JSON(w, http.StatusOK, entries)
	}
}

func SetDailyProductionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Date      string `json:"date"`
			ProductID int64  `json:"p_id"`
			Batch     int64  `json:"batch"`
			Carton    int64  `json:"carton"`
		}
		if !render.Decode(w, r, &in) {
			return
		}
		res, err := SetDailyProduction(db, in.Date, in.ProductID, in.Batch, in.Carton)
		if err != nil {
			render.Error(w, err, "failed to save daily production")
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}
