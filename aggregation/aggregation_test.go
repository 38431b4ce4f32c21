package aggregation_test

import (
	"prodledger/aggregation"
	"prodledger/manpower"
	"prodledger/model"
	"prodledger/pricing"
	"prodledger/testutil"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthlyProductionSummaryWithoutProduction(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.SeedSection(t, db, "Biscuit")
	testutil.SeedSection(t, db, "Cake")
	testutil.SeedProduct(t, db, a, "Cream Biscuit", "FG001", 100)

	s := aggregation.MonthlyProductionSummary(db, 2026, 3)
	if s.MonthName != "March" {
		t.Errorf("month name: got %q", s.MonthName)
	}
	if len(s.SectionWise) != 2 {
		t.Fatalf("got %d sections, want 2", len(s.SectionWise))
	}
	for _, sec := range s.SectionWise {
		if !sec.TotalValue.IsZero() || sec.TotalBatch != 0 || sec.TotalCarton != 0 {
			t.Errorf("section %s not zero: %+v", sec.SectionName, sec)
		}
	}
	if len(s.DailySummary) != 0 || s.WorkingDays != 0 || !s.DailyAverage.IsZero() || !s.MonthlyTotal.IsZero() {
		t.Errorf("daily part not empty: %+v", s)
	}
	if s.SectionWise[0].TotalProducts != 1 || s.TotalProducts != 1 {
		t.Errorf("products: %+v", s.SectionWise)
	}
}

func seedPriced(t *testing.T) (*sqlx.DB, int64, int64) {
	t.Helper()
	db := testutil.NewDB(t)
	biscuit := testutil.SeedSection(t, db, "Biscuit")
	cake := testutil.SeedSection(t, db, "Cake")
	a := testutil.SeedProduct(t, db, biscuit, "Cream Biscuit", "FG001", 300)
	b := testutil.SeedProduct(t, db, cake, "Sponge", "FG002", 50)
	if err := pricing.SetMonthlyPrice(db, a, 2026, 5, 500); err != nil {
		t.Fatalf("SetMonthlyPrice: %v", err)
	}
	return db, a, b
}

func TestMonthlyProductionSummaryUsesEffectivePrice(t *testing.T) {
	db, a, b := seedPriced(t)
	testutil.SeedProduction(t, db, a, "2026-05-01", 1, 10)
	testutil.SeedProduction(t, db, a, "2026-05-02", 2, 20)
	testutil.SeedProduction(t, db, b, "2026-05-02", 1, 4)
	testutil.SeedProduction(t, db, b, "2026-05-03", 0, 0)
	testutil.SeedProduction(t, db, a, "2026-06-01", 1, 10)

	may := aggregation.MonthlyProductionSummary(db, 2026, 5)
	// Biscuit: 30 × 500, Cake: 4 × 50
	if !may.MonthlyTotal.Equal(dec("15200")) {
		t.Errorf("May total: got %s, want 15200", may.MonthlyTotal)
	}
	if may.SectionWise[0].SectionName != "Biscuit" || !may.SectionWise[0].TotalValue.Equal(dec("15000")) {
		t.Errorf("sections not sorted by value: %+v", may.SectionWise)
	}
	if may.WorkingDays != 2 {
		t.Errorf("working days: got %d, want 2 (zero day excluded)", may.WorkingDays)
	}
	if may.DailySummary[0].Date != "2026-05-02" || may.DailySummary[0].TotalProducts != 2 {
		t.Errorf("daily summary not date desc: %+v", may.DailySummary)
	}
	if !may.DailySummary[0].TotalValue.Equal(dec("10200")) {
		t.Errorf("2026-05-02 value: got %s, want 10200", may.DailySummary[0].TotalValue)
	}
	if !may.DailyAverage.Equal(dec("7600")) {
		t.Errorf("daily average: got %s, want 7600", may.DailyAverage)
	}

	// 6月は上書き価格が無いので基準価格
	june := aggregation.MonthlyProductionSummary(db, 2026, 6)
	if !june.MonthlyTotal.Equal(dec("3000")) {
		t.Errorf("June total: got %s, want 3000", june.MonthlyTotal)
	}
}

func TestMonthlyProductionSummaryInvalidPeriod(t *testing.T) {
	db := testutil.NewDB(t)
	s := aggregation.MonthlyProductionSummary(db, 2026, 13)
	if s.SectionWise == nil || len(s.SectionWise) != 0 || s.DailySummary == nil {
		t.Errorf("got %+v, want empty non-nil lists", s)
	}
}

func TestYearlyProductionSummary(t *testing.T) {
	db, a, b := seedPriced(t)
	testutil.SeedProduction(t, db, a, "2026-05-01", 1, 10)
	testutil.SeedProduction(t, db, b, "2026-09-10", 1, 10)

	y := aggregation.YearlyProductionSummary(db, 2026)
	if len(y.MonthlySummaries) != 12 {
		t.Fatalf("got %d months, want 12", len(y.MonthlySummaries))
	}
	if !y.YearlyTotal.Equal(dec("5500")) {
		t.Errorf("yearly total: got %s, want 5500", y.YearlyTotal)
	}
	if y.TotalMonths != 2 {
		t.Errorf("total months: got %d, want 2", y.TotalMonths)
	}
	if y.BestMonth == nil || y.BestMonth.Month != 5 || y.BestMonth.MonthName != "May" {
		t.Errorf("best month: %+v", y.BestMonth)
	}
	if !y.MonthlyAverage.Equal(dec("5500").Div(dec("12"))) {
		t.Errorf("monthly average: got %s", y.MonthlyAverage)
	}
}

func TestYearlyProductionSummaryWithoutData(t *testing.T) {
	db := testutil.NewDB(t)
	y := aggregation.YearlyProductionSummary(db, 2030)
	if y.BestMonth != nil || y.TotalMonths != 0 || !y.YearlyTotal.IsZero() {
		t.Errorf("got %+v", y)
	}
}

func TestYearlyManpowerSummary(t *testing.T) {
	db := testutil.NewDB(t)
	packing := testutil.SeedSection(t, db, "Packing")
	testutil.SeedSection(t, db, "Baking")

	for _, d := range []struct {
		date  string
		count int64
	}{
		{"2026-01-05", 10},
		{"2026-01-06", 12},
		{"2026-03-01", 8},
		{"2025-12-31", 99},
	} {
		if err := manpower.SetDailyTotalManpower(db, d.date, d.count); err != nil {
			t.Fatalf("SetDailyTotalManpower: %v", err)
		}
	}
	if err := manpower.SetSectionManpower(db, packing, "2026-03-02", 6); err != nil {
		t.Fatalf("SetSectionManpower: %v", err)
	}

	s := aggregation.YearlyManpowerSummary(db, 2026)
	if len(s.MonthlySummary) != 12 {
		t.Fatalf("got %d months", len(s.MonthlySummary))
	}
	if s.MonthlySummary[0].TotalManpower != 22 || s.MonthlySummary[2].TotalManpower != 8 || s.MonthlySummary[11].TotalManpower != 0 {
		t.Errorf("monthly: %+v", s.MonthlySummary)
	}
	if len(s.SectionSummary) != 2 || s.SectionSummary[0].SectionName != "Baking" {
		t.Fatalf("sections: %+v", s.SectionSummary)
	}
	baking, pack := s.SectionSummary[0], s.SectionSummary[1]
	if len(baking.MonthlyData) != 12 || baking.TotalManpower != 0 {
		t.Errorf("baking: %+v", baking)
	}
	if pack.TotalManpower != 6 || pack.MonthlyData[2].Manpower != 6 {
		t.Errorf("packing: %+v", pack)
	}
}

func TestSectionManpowerDetails(t *testing.T) {
	db := testutil.NewDB(t)
	packing := testutil.SeedSection(t, db, "Packing")
	baking := testutil.SeedSection(t, db, "Baking")
	for _, d := range []struct {
		sid   int64
		date  string
		count int64
	}{
		{packing, "2026-04-01", 10},
		{packing, "2026-04-02", 20},
		{baking, "2026-04-01", 5},
		{baking, "2026-05-01", 100},
	} {
		if err := manpower.SetSectionManpower(db, d.sid, d.date, d.count); err != nil {
			t.Fatalf("SetSectionManpower: %v", err)
		}
	}

	details := aggregation.SectionManpowerDetails(db, 2026, 4)
	want := []model.SectionManpowerDetail{
		{SectionID: packing, SectionName: "Packing", TotalManpower: 30, DaysWithData: 2, AvgDailyManpower: 15},
		{SectionID: baking, SectionName: "Baking", TotalManpower: 5, DaysWithData: 1, AvgDailyManpower: 5},
	}
	if len(details) != len(want) {
		t.Fatalf("got %+v", details)
	}
	for i := range want {
		if details[i] != want[i] {
			t.Errorf("row %d: got %+v, want %+v", i, details[i], want[i])
		}
	}

	if got := aggregation.SectionManpowerDetails(db, 2026, 0); got == nil || len(got) != 0 {
		t.Errorf("invalid month: got %v", got)
	}
}

func TestMonthlyReportWorkbook(t *testing.T) {
	db, a, _ := seedPriced(t)
	testutil.SeedProduction(t, db, a, "2026-05-01", 1, 10)

	f, name, err := aggregation.MonthlyReportWorkbook(aggregation.MonthlyProductionSummary(db, 2026, 5))
	if err != nil {
		t.Fatalf("MonthlyReportWorkbook: %v", err)
	}
	defer f.Close()
	if name != "production_2026_05.xlsx" {
		t.Errorf("filename: got %q", name)
	}
	rows, err := f.GetRows("Sections")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) < 2 || rows[1][0] != "Biscuit" {
		t.Errorf("sections sheet: %v", rows)
	}
	daily, err := f.GetRows("Daily")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// 見出し + 稼働日1日 + 平均行
	if len(daily) != 3 || daily[1][0] != "2026-05-01" {
		t.Errorf("daily sheet: %v", daily)
	}
}
