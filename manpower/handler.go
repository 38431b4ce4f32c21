package manpower

import (
	"net/http"
	"prodledger/render"

	"github.com/jmoiron/sqlx"
)

type countInput struct {
	SectionID int64  `json:"s_id"`
	Date      string `json:"date"`
	MPCount   int64  `json:"mp_count"`
}

// GetSectionManpowerHandler は ?month=&year= の部門人員グリッドを返します。
func GetSectionManpowerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, ok := render.QueryInt(w, r, "month")
		if !ok {
			return
		}
		year, ok := render.QueryInt(w, r, "year")
		if !ok {
			return
		}
		grids, err := GetSectionManpower(db, month, year)
		if err != nil {
			render.Error(w, err, "failed to get section manpower")
			return
		}
		render.JSON(w, http.StatusOK, grids)
	}
}

func SetSectionManpowerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in countInput
		if !render.Decode(w, r, &in) {
			return
		}
		if err := SetSectionManpower(db, in.SectionID, in.Date, in.MPCount); err != nil {
			render.Error(w, err, "failed to save section manpower")
			return
		}
		render.Message(w, http.StatusOK, "section manpower saved")
	}
}

// GetDailyTotalManpowerHandler は ?date= の全体人員を返します。
func GetDailyTotalManpowerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := GetDailyTotalManpower(db, r.URL.Query().Get("date"))
		if err != nil {
			render.Error(w, err, "failed to get total manpower")
			return
		}
		render.JSON(w, http.StatusOK, m)
	}
}

func SetDailyTotalManpowerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in countInput
		if !render.Decode(w, r, &in) {
			return
		}
		if err := SetDailyTotalManpower(db, in.Date, in.MPCount); err != nil {
			render.Error(w, err, "failed to save total manpower")
			return
		}
		render.Message(w, http.StatusOK, "total manpower saved")
	}
}
