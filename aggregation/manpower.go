package aggregation

import (
	"prodledger/database"
	"prodledger/model"

	"go.uber.org/zap"
)

// YearlyManpowerSummary は全体人員の月別合計と、部門ごとの12か月系列を返します。
// 人員記録の無い部門も 0 の系列で含めます。
func YearlyManpowerSummary(conn database.DBTX, year int) model.YearlyManpowerSummary {
	if year <= 0 {
		zap.S().Warnf("WARN: yearly manpower summary for invalid year %d, returning empty result", year)
		return emptyManpower(year)
	}
	sections, err := database.GetSectionsOrderedByName(conn)
	if err != nil {
		zap.S().Warnf("WARN: yearly manpower summary %d failed: %v", year, err)
		return emptyManpower(year)
	}
	totals, err := database.GetMonthlyTotalManpower(conn, year)
	if err != nil {
		zap.S().Warnf("WARN: yearly manpower summary %d failed: %v", year, err)
		return emptyManpower(year)
	}
	sectionTotals, err := database.GetSectionMonthlyManpower(conn, year)
	if err != nil {
		zap.S().Warnf("WARN: yearly manpower summary %d failed: %v", year, err)
		return emptyManpower(year)
	}

	result := emptyManpower(year)
	result.Sections = sections

	result.MonthlySummary = make([]model.MonthlyManpower, 12)
	for i := range result.MonthlySummary {
		result.MonthlySummary[i].Month = i + 1
	}
	for _, t := range totals {
		if t.Month >= 1 && t.Month <= 12 {
			result.MonthlySummary[t.Month-1].TotalManpower = t.Total
		}
	}

	series := make(map[int64]*model.SectionManpowerSeries, len(sections))
	result.SectionSummary = make([]model.SectionManpowerSeries, len(sections))
	for i, s := range sections {
		monthly := make([]model.SectionMonthlyManpower, 12)
		for m := range monthly {
			monthly[m].Month = m + 1
		}
		result.SectionSummary[i] = model.SectionManpowerSeries{
			SectionID:   s.ID,
			SectionName: s.Name,
			MonthlyData: monthly,
		}
		series[s.ID] = &result.SectionSummary[i]
	}
	for _, t := range sectionTotals {
		s, ok := series[t.SectionID]
		if !ok || t.Month < 1 || t.Month > 12 {
			continue
		}
		s.MonthlyData[t.Month-1].Manpower = t.Total
		s.TotalManpower += t.Total
	}
	return result
}

// SectionManpowerDetails は月の部門別人員合計・記録日数・記録日あたり平均を返します。
func SectionManpowerDetails(conn database.DBTX, year, month int) []model.SectionManpowerDetail {
	if !validPeriod(year, month) {
		zap.S().Warnf("WARN: section manpower details for invalid period %d-%02d, returning empty result", year, month)
		return []model.SectionManpowerDetail{}
	}
	start, end, _ := database.MonthBounds(year, month)
	details, err := database.GetSectionManpowerDetails(conn, start, end)
	if err != nil {
		zap.S().Warnf("WARN: section manpower details %d-%02d failed: %v", year, month, err)
		return []model.SectionManpowerDetail{}
	}
	return details
}
