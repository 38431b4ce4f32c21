// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\manpower\manpower.go
package manpower

import (
	"prodledger/database"
	"prodledger/model"
)

type gridKey struct {
	sectionID int64
	date      string
}

// GetSectionManpower は全部門 (名前順) について、指定月の全日付を埋めた人員グリッドを返します。
// 登録の無い日は {id:null, mp_count:0, exists:false} で補完します。
func GetSectionManpower(db database.DBTX, month, year int) ([]model.SectionManpowerGrid, error) {
	if err := database.ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	sections, err := database.GetSectionsOrderedByName(db)
	if err != nil {
		return nil, err
	}

	start, end, _ := database.MonthBounds(year, month)
	dates := database.MonthDates(year, month)
	stored, err := database.GetSectionManpowerInRange(db, start, end)
	if err != nil {
		return nil, err
	}
	byKey := make(map[gridKey]model.DailySectionManpower, len(stored))
	for _, row := range stored {
		byKey[gridKey{row.SectionID, row.Date}] = row
	}

	grids := make([]model.SectionManpowerGrid, 0, len(sections))
	for _, s := range sections {
		daily := make([]model.DailySectionManpower, len(dates))
		for i, date := range dates {
			row, ok := byKey[gridKey{s.ID, date}]
			if !ok {
				row = model.DailySectionManpower{SectionID: s.ID, Date: date}
			}
			daily[i] = row
		}
		grids = append(grids, model.SectionManpowerGrid{Section: s, DailyMP: daily})
	}
	return grids, nil
}

// SetSectionManpower は (部門, 日付) の人員を登録・上書きします。
func SetSectionManpower(db database.DBTX, sectionID int64, date string, count int64) error {
	if _, _, err := database.ParseDate(date); err != nil {
		return err
	}
	if _, err := database.GetSectionByID(db, sectionID); err != nil {
		return err
	}
	return database.UpsertSectionManpower(db, sectionID, date, count)
}

// GetDailyTotalManpower は日付の全体人員を返します。未登録日は 0 です。
func GetDailyTotalManpower(db database.DBTX, date string) (*model.DailyTotalManpower, error) {
	if _, _, err := database.ParseDate(date); err != nil {
		return nil, err
	}
	return database.GetDailyTotalManpower(db, date)
}

func SetDailyTotalManpower(db database.DBTX, date string, count int64) error {
	if _, _, err := database.ParseDate(date); err != nil {
		return err
	}
	return database.UpsertDailyTotalManpower(db, date, count)
}
