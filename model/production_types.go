// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\model\production_types.go
package model

// ProductionUplift は販売目標から生産目標を導く固定係数 (+20%) です。
const ProductionUplift = 1.2

type MonthlyPrice struct {
	ProductID int64   `db:"p_id" json:"p_id"`
	Year      int     `db:"year" json:"year"`
	Month     int     `db:"month" json:"month"`
	Price     float64 `db:"price" json:"price"`
}

// MonthlySummary は製品・年月ごとの期首在庫と目標です。
type MonthlySummary struct {
	ID               int64 `db:"id" json:"id"`
	ProductID        int64 `db:"p_id" json:"p_id"`
	Year             int   `db:"year" json:"year"`
	Month            int   `db:"month" json:"month"`
	Opening          int64 `db:"opening" json:"opening"`
	SalesTarget      int64 `db:"sales_target" json:"sales_target"`
	ProductionTarget int64 `db:"production_target" json:"production_target"`
}

// DailyProduction の ID が nil の行は未登録日の補完行 (Exists=false) です。
type DailyProduction struct {
	ID        *int64 `db:"id" json:"id"`
	ProductID int64  `db:"p_id" json:"p_id"`
	Date      string `db:"date" json:"date"`
	Batch     int64  `db:"batch" json:"batch"`
	Carton    int64  `db:"carton" json:"carton"`
	Exists    bool   `db:"-" json:"exists"`
}

type ProductionStats struct {
	TotalProduction       int64 `json:"total_production"`
	RemainingProduction   int64 `json:"remaining_production"`
	CompletionPercentage  int64 `json:"completion_percentage"`
	CurrentTotal          int64 `json:"current_total"`
	FloorProductionTarget int64 `json:"floor_production_target"`
}

type PricedProduct struct {
	Product
	CurrentPrice float64 `json:"current_price"`
}

// ProductionGridEntry は getDailyProduction の製品1件分です。
type ProductionGridEntry struct {
	Product        PricedProduct     `json:"product"`
	MonthlySummary MonthlySummary    `json:"monthly_summary"`
	Productions    []DailyProduction `json:"productions"`
	Stats          ProductionStats   `json:"stats"`
}
