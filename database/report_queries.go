// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\database\report_queries.go
package database

import (
	"database/sql"
	"fmt"
	"prodledger/model"
)

// SectionProductTotal は (部門, 製品) 単位の月間集計行です。
// 製品を持たない部門は ProductID が無効な1行になります。
type SectionProductTotal struct {
	SectionID   int64         `db:"section_id"`
	SectionName string        `db:"section_name"`
	ProductID   sql.NullInt64 `db:"product_id"`
	Batch       int64         `db:"batch"`
	Carton      int64         `db:"carton"`
	Price       float64       `db:"price"`
}

// DateProductTotal は (日付, 製品) 単位の集計行です。
type DateProductTotal struct {
	Date      string  `db:"date"`
	ProductID int64   `db:"product_id"`
	Batch     int64   `db:"batch"`
	Carton    int64   `db:"carton"`
	Price     float64 `db:"price"`
}

// MonthValue は月番号ごとの合計値です。
type MonthValue struct {
	Month int   `db:"month"`
	Total int64 `db:"total"`
}

// SectionMonthValue は部門・月番号ごとの合計値です。
type SectionMonthValue struct {
	SectionID int64 `db:"section_id"`
	Month     int   `db:"month"`
	Total     int64 `db:"total"`
}

// GetSectionProductTotals は全部門について製品別の期間内生産と実効価格を返します。
func GetSectionProductTotals(dbtx DBTX, year, month int, startDate, endDate string) ([]SectionProductTotal, error) {
	rows := []SectionProductTotal{}
	const q = `
		SELECT
			s.id   AS section_id,
			s.name AS section_name,
			p.id   AS product_id,
			COALESCE(SUM(dp.batch), 0)  AS batch,
			COALESCE(SUM(dp.carton), 0) AS carton,
			COALESCE(mp.price, p.base_price, 0) AS price
		FROM sections s
		LEFT JOIN products p ON p.s_id = s.id
		LEFT JOIN daily_production dp ON dp.p_id = p.id AND dp.date BETWEEN ? AND ?
		LEFT JOIN monthly_prices mp ON mp.p_id = p.id AND mp.year = ? AND mp.month = ?
		GROUP BY s.id, p.id
		ORDER BY s.id, p.id`
	if err := dbtx.Select(&rows, q, startDate, endDate, year, month); err != nil {
		return nil, fmt.Errorf("failed to get section product totals: %w", err)
	}
	return rows, nil
}

// GetDateProductTotals は期間内の日付・製品別の生産と実効価格を日付の降順で返します。
func GetDateProductTotals(dbtx DBTX, year, month int, startDate, endDate string) ([]DateProductTotal, error) {
	rows := []DateProductTotal{}
	const q = `
		SELECT
			dp.date AS date,
			dp.p_id AS product_id,
			SUM(dp.batch)  AS batch,
			SUM(dp.carton) AS carton,
			COALESCE(mp.price, p.base_price, 0) AS price
		FROM daily_production dp
		JOIN products p ON dp.p_id = p.id
		LEFT JOIN monthly_prices mp ON mp.p_id = p.id AND mp.year = ? AND mp.month = ?
		WHERE dp.date BETWEEN ? AND ?
		GROUP BY dp.date, dp.p_id
		ORDER BY dp.date DESC, dp.p_id`
	if err := dbtx.Select(&rows, q, year, month, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to get daily product totals: %w", err)
	}
	return rows, nil
}

// GetMonthlyTotalManpower は年内の全体人員を月ごとに合計します。
func GetMonthlyTotalManpower(dbtx DBTX, year int) ([]MonthValue, error) {
	rows := []MonthValue{}
	const q = `
		SELECT CAST(strftime('%m', date) AS INTEGER) AS month, COALESCE(SUM(mp_count), 0) AS total
		FROM daily_total_manpower
		WHERE strftime('%Y', date) = ?
		GROUP BY month ORDER BY month`
	if err := dbtx.Select(&rows, q, fmt.Sprintf("%04d", year)); err != nil {
		return nil, fmt.Errorf("failed to get monthly total manpower: %w", err)
	}
	return rows, nil
}

// GetSectionMonthlyManpower は年内の部門人員を部門・月ごとに合計します。
func GetSectionMonthlyManpower(dbtx DBTX, year int) ([]SectionMonthValue, error) {
	rows := []SectionMonthValue{}
	const q = `
		SELECT s_id AS section_id, CAST(strftime('%m', date) AS INTEGER) AS month, COALESCE(SUM(mp_count), 0) AS total
		FROM daily_section_manpower
		WHERE strftime('%Y', date) = ?
		GROUP BY s_id, month ORDER BY s_id, month`
	if err := dbtx.Select(&rows, q, fmt.Sprintf("%04d", year)); err != nil {
		return nil, fmt.Errorf("failed to get section monthly manpower: %w", err)
	}
	return rows, nil
}

// GetSectionManpowerDetails は部門ごとの期間内人員合計・記録日数・記録日平均を合計の降順で返します。
func GetSectionManpowerDetails(dbtx DBTX, startDate, endDate string) ([]model.SectionManpowerDetail, error) {
	rows := []model.SectionManpowerDetail{}
	const q = `
		SELECT
			s.id   AS section_id,
			s.name AS section_name,
			COALESCE(SUM(dsm.mp_count), 0) AS total_manpower,
			COUNT(DISTINCT dsm.date)       AS days_with_data,
			COALESCE(AVG(dsm.mp_count), 0) AS avg_daily_manpower
		FROM sections s
		LEFT JOIN daily_section_manpower dsm ON dsm.s_id = s.id AND dsm.date BETWEEN ? AND ?
		GROUP BY s.id, s.name
		ORDER BY total_manpower DESC, s.id`
	if err := dbtx.Select(&rows, q, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to get section manpower details: %w", err)
	}
	return rows, nil
}
