package database

import (
	"database/sql"
	"fmt"
	"prodledger/model"
	"time"
)

// ValidatePeriod は年月の範囲を検証します。
func ValidatePeriod(year, month int) error {
	if year <= 0 || month < 1 || month > 12 {
		return fmt.Errorf("invalid period %d-%02d: %w", year, month, ErrInvalidInput)
	}
	return nil
}

// GetEffectivePrice はその月の上書き価格、なければ基準価格を返します。
func GetEffectivePrice(dbtx DBTX, productID int64, year, month int) (float64, error) {
	var price float64
	const q = `
		SELECT COALESCE(mp.price, p.base_price)
		FROM products p
		LEFT JOIN monthly_prices mp ON mp.p_id = p.id AND mp.year = ? AND mp.month = ?
		WHERE p.id = ?`
	err := dbtx.Get(&price, q, year, month, productID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve price for product %d (%d-%02d): %w", productID, year, month, err)
	}
	return price, nil
}

// GetEffectivePricesBySection は部門内の全製品の実効価格を製品IDをキーに返します。
func GetEffectivePricesBySection(dbtx DBTX, sectionID int64, year, month int) (map[int64]float64, error) {
	const q = `
		SELECT p.id, COALESCE(mp.price, p.base_price)
		FROM products p
		LEFT JOIN monthly_prices mp ON mp.p_id = p.id AND mp.year = ? AND mp.month = ?
		WHERE p.s_id = ?`
	rows, err := dbtx.Query(q, year, month, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prices for section %d: %w", sectionID, err)
	}
	defer rows.Close()

	prices := make(map[int64]float64)
	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

func UpsertMonthlyPrice(dbtx DBTX, mp model.MonthlyPrice) error {
	if err := ValidatePeriod(mp.Year, mp.Month); err != nil {
		return err
	}
	if mp.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	}
	const q = `
		INSERT INTO monthly_prices (p_id, year, month, price) VALUES (?, ?, ?, ?)
		ON CONFLICT(p_id, year, month) DO UPDATE SET price = excluded.price`
	if _, err := dbtx.Exec(q, mp.ProductID, mp.Year, mp.Month, mp.Price); err != nil {
		return writeError(err, "failed to set monthly price")
	}
	return nil
}

const monthlySummaryColumns = `id, p_id, year, month, opening, sales_target, production_target`

// EnsureMonthlySummary は行が無ければ既定値 (全て0) で作ります。既存行には触れません。
func EnsureMonthlySummary(dbtx DBTX, productID int64, year, month int) error {
	const q = `
		INSERT INTO monthly_product_summary (p_id, year, month, opening, sales_target, production_target)
		VALUES (?, ?, ?, 0, 0, 0)
		ON CONFLICT(p_id, year, month) DO NOTHING`
	if _, err := dbtx.Exec(q, productID, year, month); err != nil {
		return writeError(err, "failed to create monthly summary")
	}
	return nil
}

func GetMonthlySummary(dbtx DBTX, productID int64, year, month int) (*model.MonthlySummary, error) {
	var s model.MonthlySummary
	q := `SELECT ` + monthlySummaryColumns + ` FROM monthly_product_summary WHERE p_id = ? AND year = ? AND month = ?`
	err := dbtx.Get(&s, q, productID, year, month)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("monthly summary for product %d (%d-%02d): %w", productID, year, month, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly summary: %w", err)
	}
	return &s, nil
}

// UpsertMonthlySummary は期首・販売目標・生産目標を書き込みます。生産目標の導出は呼び出し側の責務です。
func UpsertMonthlySummary(dbtx DBTX, s model.MonthlySummary) error {
	const q = `
		INSERT INTO monthly_product_summary (p_id, year, month, opening, sales_target, production_target)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(p_id, year, month) DO UPDATE SET
			opening = excluded.opening,
			sales_target = excluded.sales_target,
			production_target = excluded.production_target`
	if _, err := dbtx.Exec(q, s.ProductID, s.Year, s.Month, s.Opening, s.SalesTarget, s.ProductionTarget); err != nil {
		return writeError(err, "failed to update monthly summary")
	}
	return nil
}

func CountMonthlySummaries(dbtx DBTX, productID int64, year, month int) (int, error) {
	var n int
	err := dbtx.Get(&n, `SELECT COUNT(*) FROM monthly_product_summary WHERE p_id = ? AND year = ? AND month = ?`, productID, year, month)
	return n, err
}

// MonthBounds は月初日・月末日 (YYYY-MM-DD) と日数を返します。閏年の2月は29日です。
func MonthBounds(year, month int) (start, end string, days int) {
	days = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	start = fmt.Sprintf("%04d-%02d-01", year, month)
	end = fmt.Sprintf("%04d-%02d-%02d", year, month, days)
	return start, end, days
}

// MonthDates はその月の全日付を昇順で返します。
func MonthDates(year, month int) []string {
	_, _, days := MonthBounds(year, month)
	dates := make([]string, days)
	for d := 1; d <= days; d++ {
		dates[d-1] = fmt.Sprintf("%04d-%02d-%02d", year, month, d)
	}
	return dates
}

// ParseDate は YYYY-MM-DD 形式の日付を検証し、年と月を返します。
func ParseDate(date string) (year, month int, err error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q: %w", date, ErrInvalidInput)
	}
	return t.Year(), int(t.Month()), nil
}
