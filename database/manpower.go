package database

import (
	"database/sql"
	"fmt"
	"prodledger/model"
)

func GetSectionManpowerInRange(dbtx DBTX, startDate, endDate string) ([]model.DailySectionManpower, error) {
	rows := []model.DailySectionManpower{}
	const q = `
		SELECT id, s_id, date, mp_count FROM daily_section_manpower
		WHERE date BETWEEN ? AND ?
		ORDER BY s_id, date`
	if err := dbtx.Select(&rows, q, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to get section manpower: %w", err)
	}
	for i := range rows {
		rows[i].Exists = true
	}
	return rows, nil
}

func UpsertSectionManpower(dbtx DBTX, sectionID int64, date string, count int64) error {
	if count < 0 {
		return fmt.Errorf("manpower count must not be negative: %w", ErrInvalidInput)
	}
	const q = `
		INSERT INTO daily_section_manpower (s_id, date, mp_count) VALUES (?, ?, ?)
		ON CONFLICT(s_id, date) DO UPDATE SET mp_count = excluded.mp_count`
	if _, err := dbtx.Exec(q, sectionID, date, count); err != nil {
		return writeError(err, "failed to save section manpower")
	}
	return nil
}

// GetDailyTotalManpower は日付の全体人員を返します。未登録日は mp_count=0 の行 (ID=0) です。
func GetDailyTotalManpower(dbtx DBTX, date string) (*model.DailyTotalManpower, error) {
	var m model.DailyTotalManpower
	err := dbtx.Get(&m, `SELECT id, date, mp_count FROM daily_total_manpower WHERE date = ?`, date)
	if err == sql.ErrNoRows {
		return &model.DailyTotalManpower{Date: date}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get total manpower for %s: %w", date, err)
	}
	return &m, nil
}

func UpsertDailyTotalManpower(dbtx DBTX, date string, count int64) error {
	if count < 0 {
		return fmt.Errorf("manpower count must not be negative: %w", ErrInvalidInput)
	}
	const q = `
		INSERT INTO daily_total_manpower (date, mp_count) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET mp_count = excluded.mp_count`
	if _, err := dbtx.Exec(q, date, count); err != nil {
		return writeError(err, "failed to save total manpower")
	}
	return nil
}
