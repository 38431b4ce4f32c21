// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\aggregation\handler.go
package aggregation

import (
	"net/http"
	"prodledger/render"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// レポートは常に何かを返すため、数値でないパラメータも 0 として集計へ渡します (結果は空)。
func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

func MonthlyProductionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, MonthlyProductionSummary(db, queryInt(r, "year"), queryInt(r, "month")))
	}
}

func YearlyProductionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, YearlyProductionSummary(db, queryInt(r, "year")))
	}
}

func YearlyManpowerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, YearlyManpowerSummary(db, queryInt(r, "year")))
	}
}

func SectionManpowerDetailsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, SectionManpowerDetails(db, queryInt(r, "year"), queryInt(r, "month")))
	}
}

// ExportMonthlyHandler は月次集計を xlsx でダウンロードさせます。
func ExportMonthlyHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary := MonthlyProductionSummary(db, queryInt(r, "year"), queryInt(r, "month"))
		f, filename, err := MonthlyReportWorkbook(summary)
		if err != nil {
			render.Error(w, err, "failed to build report workbook")
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
		if err := f.Write(w); err != nil {
			zap.S().Errorf("failed to write report workbook: %v", err)
		}
	}
}
