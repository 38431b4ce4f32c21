// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\aggregation\helpers.go
package aggregation

import (
	"prodledger/model"
	"time"

	"github.com/shopspring/decimal"
)

// MonthName は英語の月名 (January 等) を返します。範囲外は空文字です。
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

func validPeriod(year, month int) bool {
	return year > 0 && month >= 1 && month <= 12
}

// value はカートン数 × 単価を10進で計算します。
func value(carton int64, price float64) decimal.Decimal {
	return decimal.NewFromInt(carton).Mul(decimal.NewFromFloat(price))
}

func emptyMonthly(year, month int) model.MonthlyProductionSummary {
	return model.MonthlyProductionSummary{
		Year:         year,
		Month:        month,
		MonthName:    MonthName(month),
		MonthlyTotal: decimal.Zero,
		DailyAverage: decimal.Zero,
		SectionWise:  []model.SectionProductionSummary{},
		DailySummary: []model.DailyProductionSummary{},
	}
}

func emptyYearly(year int) model.YearlyProductionSummary {
	return model.YearlyProductionSummary{
		Year:             year,
		YearlyTotal:      decimal.Zero,
		MonthlyAverage:   decimal.Zero,
		MonthlySummaries: []model.MonthlyProductionSummary{},
	}
}

func emptyManpower(year int) model.YearlyManpowerSummary {
	return model.YearlyManpowerSummary{
		Year:           year,
		Sections:       []model.Section{},
		MonthlySummary: []model.MonthlyManpower{},
		SectionSummary: []model.SectionManpowerSeries{},
	}
}
