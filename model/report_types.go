// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\model\report_types.go
package model

import "github.com/shopspring/decimal"

// SectionProductionSummary は月次レポートの部門別行です。
type SectionProductionSummary struct {
	SectionID     int64           `json:"section_id"`
	SectionName   string          `json:"section_name"`
	TotalProducts int             `json:"total_products"`
	TotalBatch    int64           `json:"total_batch"`
	TotalCarton   int64           `json:"total_carton"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// DailyProductionSummary は月次レポートの日別行 (全部門合算) です。
type DailyProductionSummary struct {
	Date          string          `json:"date"`
	TotalProducts int             `json:"total_products"`
	TotalBatch    int64           `json:"total_batch"`
	TotalCarton   int64           `json:"total_carton"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

type MonthlyProductionSummary struct {
	Year          int                        `json:"year"`
	Month         int                        `json:"month"`
	MonthName     string                     `json:"month_name"`
	MonthlyTotal  decimal.Decimal            `json:"monthly_total"`
	DailyAverage  decimal.Decimal            `json:"daily_average"`
	TotalProducts int                        `json:"total_products"`
	WorkingDays   int                        `json:"working_days"`
	SectionWise   []SectionProductionSummary `json:"section_wise"`
	DailySummary  []DailyProductionSummary   `json:"daily_summary"`
}

type BestMonth struct {
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	Value     decimal.Decimal `json:"value"`
}

type YearlyProductionSummary struct {
	Year             int                        `json:"year"`
	YearlyTotal      decimal.Decimal            `json:"yearly_total"`
	MonthlyAverage   decimal.Decimal            `json:"monthly_average"`
	TotalProducts    int                        `json:"total_products"`
	BestMonth        *BestMonth                 `json:"best_month"`
	TotalMonths      int                        `json:"total_months"`
	MonthlySummaries []MonthlyProductionSummary `json:"monthly_summaries"`
}

type MonthlyManpower struct {
	Month         int   `json:"month"`
	TotalManpower int64 `json:"total_manpower"`
}

type SectionMonthlyManpower struct {
	Month    int   `json:"month"`
	Manpower int64 `json:"manpower"`
}

// SectionManpowerSeries の MonthlyData は常に12要素 (1月〜12月) です。
type SectionManpowerSeries struct {
	SectionID     int64                    `json:"section_id"`
	SectionName   string                   `json:"section_name"`
	TotalManpower int64                    `json:"total_manpower"`
	MonthlyData   []SectionMonthlyManpower `json:"monthly_data"`
}

type YearlyManpowerSummary struct {
	Year           int                     `json:"year"`
	Sections       []Section               `json:"sections"`
	MonthlySummary []MonthlyManpower       `json:"monthly_summary"`
	SectionSummary []SectionManpowerSeries `json:"section_summary"`
}

// SectionManpowerDetail の平均は記録のある日数で割った値です (暦日ではない)。
type SectionManpowerDetail struct {
	SectionID        int64   `db:"section_id" json:"section_id"`
	SectionName      string  `db:"section_name" json:"section_name"`
	TotalManpower    int64   `db:"total_manpower" json:"total_manpower"`
	DaysWithData     int     `db:"days_with_data" json:"days_with_data"`
	AvgDailyManpower float64 `db:"avg_daily_manpower" json:"avg_daily_manpower"`
}
