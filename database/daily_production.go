package database

import (
	"fmt"
	"prodledger/model"
)

// GetDailyProductionForSection は部門内全製品の期間内日報を1クエリで返します。
func GetDailyProductionForSection(dbtx DBTX, sectionID int64, startDate, endDate string) ([]model.DailyProduction, error) {
	rows := []model.DailyProduction{}
	const q = `
		SELECT dp.id, dp.p_id, dp.date, dp.batch, dp.carton
		FROM daily_production dp
		JOIN products p ON dp.p_id = p.id
		WHERE p.s_id = ? AND dp.date BETWEEN ? AND ?
		ORDER BY dp.p_id, dp.date`
	if err := dbtx.Select(&rows, q, sectionID, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to get daily production for section %d: %w", sectionID, err)
	}
	for i := range rows {
		rows[i].Exists = true
	}
	return rows, nil
}

// UpsertDailyProduction は (製品, 日付) をキーに数量を登録・上書きし、行IDを返します。
func UpsertDailyProduction(dbtx DBTX, productID int64, date string, batch, carton int64) (int64, error) {
	if batch < 0 || carton < 0 {
		return 0, fmt.Errorf("batch and carton must not be negative: %w", ErrInvalidInput)
	}
	const q = `
		INSERT INTO daily_production (p_id, date, batch, carton) VALUES (?, ?, ?, ?)
		ON CONFLICT(p_id, date) DO UPDATE SET batch = excluded.batch, carton = excluded.carton`
	if _, err := dbtx.Exec(q, productID, date, batch, carton); err != nil {
		return 0, writeError(err, "failed to save daily production")
	}
	var id int64
	if err := dbtx.Get(&id, `SELECT id FROM daily_production WHERE p_id = ? AND date = ?`, productID, date); err != nil {
		return 0, fmt.Errorf("failed to read back daily production id: %w", err)
	}
	return id, nil
}

// SumCartonsForProduct は製品の期間内カートン合計を返します。
func SumCartonsForProduct(dbtx DBTX, productID int64, startDate, endDate string) (int64, error) {
	var total int64
	const q = `SELECT COALESCE(SUM(carton), 0) FROM daily_production WHERE p_id = ? AND date BETWEEN ? AND ?`
	if err := dbtx.Get(&total, q, productID, startDate, endDate); err != nil {
		return 0, fmt.Errorf("failed to sum cartons for product %d: %w", productID, err)
	}
	return total, nil
}
