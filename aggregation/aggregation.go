// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\aggregation\aggregation.go
package aggregation

import (
	"fmt"
	"prodledger/database"
	"prodledger/model"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MonthlyProductionSummary は月の部門別・日別の生産集計を返します。
// 読み取り専用で、失敗時はエラーを返さず空の集計を返します。
func MonthlyProductionSummary(conn database.DBTX, year, month int) model.MonthlyProductionSummary {
	summary, err := monthlyProductionSummary(conn, year, month)
	if err != nil {
		zap.S().Warnf("WARN: monthly production summary %d-%02d failed, returning empty result: %v", year, month, err)
		return emptyMonthly(year, month)
	}
	return *summary
}

func monthlyProductionSummary(conn database.DBTX, year, month int) (*model.MonthlyProductionSummary, error) {
	if !validPeriod(year, month) {
		return nil, fmt.Errorf("invalid period %d-%02d", year, month)
	}
	start, end, _ := database.MonthBounds(year, month)

	// 1. 部門別 (製品の無い部門も 0 で残す)
	productRows, err := database.GetSectionProductTotals(conn, year, month, start, end)
	if err != nil {
		return nil, err
	}
	sections := []model.SectionProductionSummary{}
	index := make(map[int64]int)
	for _, row := range productRows {
		i, ok := index[row.SectionID]
		if !ok {
			sections = append(sections, model.SectionProductionSummary{
				SectionID:   row.SectionID,
				SectionName: row.SectionName,
				TotalValue:  decimal.Zero,
			})
			i = len(sections) - 1
			index[row.SectionID] = i
		}
		if !row.ProductID.Valid {
			continue
		}
		s := &sections[i]
		s.TotalProducts++
		s.TotalBatch += row.Batch
		s.TotalCarton += row.Carton
		s.TotalValue = s.TotalValue.Add(value(row.Carton, row.Price))
	}
	sort.SliceStable(sections, func(i, j int) bool {
		if c := sections[i].TotalValue.Cmp(sections[j].TotalValue); c != 0 {
			return c > 0
		}
		return sections[i].SectionID < sections[j].SectionID
	})

	// 2. 日別 (全部門合算、日付の降順)
	dateRows, err := database.GetDateProductTotals(conn, year, month, start, end)
	if err != nil {
		return nil, err
	}
	daily := []model.DailyProductionSummary{}
	for _, row := range dateRows {
		if n := len(daily); n == 0 || daily[n-1].Date != row.Date {
			daily = append(daily, model.DailyProductionSummary{Date: row.Date, TotalValue: decimal.Zero})
		}
		d := &daily[len(daily)-1]
		d.TotalProducts++
		d.TotalBatch += row.Batch
		d.TotalCarton += row.Carton
		d.TotalValue = d.TotalValue.Add(value(row.Carton, row.Price))
	}
	// 稼働日はバッチまたはカートンが 0 でない日だけ
	working := daily[:0]
	for _, d := range daily {
		if d.TotalBatch != 0 || d.TotalCarton != 0 {
			working = append(working, d)
		}
	}

	result := emptyMonthly(year, month)
	result.SectionWise = sections
	result.DailySummary = working
	result.WorkingDays = len(working)
	for _, s := range sections {
		result.MonthlyTotal = result.MonthlyTotal.Add(s.TotalValue)
		result.TotalProducts += s.TotalProducts
	}
	if result.WorkingDays > 0 {
		result.DailyAverage = result.MonthlyTotal.Div(decimal.NewFromInt(int64(result.WorkingDays)))
	}
	return &result, nil
}

// YearlyProductionSummary は12か月分の月次集計と年間合計・最高月を返します。
func YearlyProductionSummary(conn database.DBTX, year int) model.YearlyProductionSummary {
	if year <= 0 {
		zap.S().Warnf("WARN: yearly production summary for invalid year %d, returning empty result", year)
		return emptyYearly(year)
	}

	result := emptyYearly(year)
	for month := 1; month <= 12; month++ {
		summary, err := monthlyProductionSummary(conn, year, month)
		if err != nil {
			zap.S().Warnf("WARN: yearly production summary %d failed at month %d, returning empty result: %v", year, month, err)
			return emptyYearly(year)
		}
		result.MonthlySummaries = append(result.MonthlySummaries, *summary)
		result.YearlyTotal = result.YearlyTotal.Add(summary.MonthlyTotal)
		result.TotalProducts += summary.TotalProducts

		if !summary.MonthlyTotal.IsZero() {
			result.TotalMonths++
		}
		if summary.MonthlyTotal.IsPositive() && (result.BestMonth == nil || summary.MonthlyTotal.GreaterThan(result.BestMonth.Value)) {
			result.BestMonth = &model.BestMonth{
				Month:     month,
				MonthName: MonthName(month),
				Value:     summary.MonthlyTotal,
			}
		}
	}
	result.MonthlyAverage = result.YearlyTotal.Div(decimal.NewFromInt(12))
	return result
}
