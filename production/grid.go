// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\production\grid.go
package production

import (
	"fmt"
	"prodledger/database"
	"prodledger/model"
	"prodledger/target"

	"github.com/jmoiron/sqlx"
)

type gridKey struct {
	productID int64
	date      string
}

// GetDailyProduction は部門の全製品について、指定月の全日付を埋めた日報グリッドを返します。
// 登録の無い日は {id:null, batch:0, carton:0, exists:false} で補完します。
// 各製品の月次サマリーは無ければ作成されます。
func GetDailyProduction(db *sqlx.DB, sectionID int64, month, year int) ([]model.ProductionGridEntry, error) {
	if err := database.ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := database.GetSectionByID(tx, sectionID); err != nil {
		return nil, err
	}
	products, err := database.GetProductsBySection(tx, sectionID)
	if err != nil {
		return nil, err
	}
	entries := make([]model.ProductionGridEntry, 0, len(products))
	if len(products) == 0 {
		return entries, nil
	}

	start, end, _ := database.MonthBounds(year, month)
	dates := database.MonthDates(year, month)

	stored, err := database.GetDailyProductionForSection(tx, sectionID, start, end)
	if err != nil {
		return nil, err
	}
	byKey := make(map[gridKey]model.DailyProduction, len(stored))
	for _, row := range stored {
		byKey[gridKey{row.ProductID, row.Date}] = row
	}

	prices, err := database.GetEffectivePricesBySection(tx, sectionID, year, month)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		summary, err := target.GetOrCreate(tx, p.ID, year, month)
		if err != nil {
			return nil, err
		}

		grid := make([]model.DailyProduction, len(dates))
		var totalCartons int64
		for i, date := range dates {
			row, ok := byKey[gridKey{p.ID, date}]
			if !ok {
				row = model.DailyProduction{ProductID: p.ID, Date: date}
			}
			grid[i] = row
			totalCartons += row.Carton
		}

		entries = append(entries, model.ProductionGridEntry{
			Product:        model.PricedProduct{Product: p, CurrentPrice: prices[p.ID]},
			MonthlySummary: *summary,
			Productions:    grid,
			Stats:          ComputeStats(*summary, totalCartons),
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit production grid: %w", err)
	}
	return entries, nil
}

// ComputeStats は月次サマリーと月間カートン合計から進捗を計算します。
// カートンのみを集計し、バッチは含めません。
func ComputeStats(summary model.MonthlySummary, totalCartons int64) model.ProductionStats {
	current := summary.Opening + totalCartons
	return model.ProductionStats{
		TotalProduction:       totalCartons,
		CurrentTotal:          current,
		FloorProductionTarget: max(summary.ProductionTarget-summary.Opening, 0),
		RemainingProduction:   max(summary.ProductionTarget-current, 0),
		CompletionPercentage:  target.CompletionPercentage(current, summary.ProductionTarget),
	}
}

// SetResult は日報保存後の行と、その月の最新の進捗です。
type SetResult struct {
	Production model.DailyProduction `json:"production"`
	Stats      model.ProductionStats `json:"stats"`
}

// SetDailyProduction は (日付, 製品) のバッチ・カートンを登録・上書きし、月の進捗を再計算します。
func SetDailyProduction(db *sqlx.DB, date string, productID int64, batch, carton int64) (*SetResult, error) {
	year, month, err := database.ParseDate(date)
	if err != nil {
		return nil, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := database.GetProductByID(tx, productID); err != nil {
		return nil, err
	}
	id, err := database.UpsertDailyProduction(tx, productID, date, batch, carton)
	if err != nil {
		return nil, err
	}
	summary, err := target.GetOrCreate(tx, productID, year, month)
	if err != nil {
		return nil, err
	}
	start, end, _ := database.MonthBounds(year, month)
	total, err := database.SumCartonsForProduct(tx, productID, start, end)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit daily production: %w", err)
	}

	return &SetResult{
		Production: model.DailyProduction{
			ID:        &id,
			ProductID: productID,
			Date:      date,
			Batch:     batch,
			Carton:    carton,
			Exists:    true,
		},
		Stats: ComputeStats(*summary, total),
	}, nil
}
