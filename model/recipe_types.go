package model

// レシピ用途
const (
	PurposeBatch  = "batch"
	PurposeCarton = "carton"
)

// Recipe は (製品, 資材, 用途) 単位の配合量です。
type Recipe struct {
	ID           int64   `db:"id" json:"id"`
	ProductID    int64   `db:"p_id" json:"p_id"`
	MaterialID   int64   `db:"m_id" json:"m_id"`
	Quantity     float64 `db:"quantity" json:"quantity"`
	Purpose      string  `db:"purpose" json:"purpose"`
	MaterialType string  `db:"m_type" json:"m_type"`
}

// RecipeView は資材マスタを結合したレシピ行です。
type RecipeView struct {
	Recipe
	MaterialName  string  `db:"material_name" json:"material_name"`
	MaterialUnit  string  `db:"material_unit" json:"material_unit"`
	MaterialKind  string  `db:"material_type" json:"material_type"`
	MaterialCode  string  `db:"material_code" json:"material_code"`
	MaterialPrice float64 `db:"material_price" json:"material_price"`
	ProductName   string  `db:"product_name" json:"product_name,omitempty"`
}

// RecipeSummary は用途ごとの件数と数量合計です。
type RecipeSummary struct {
	Purpose       string  `db:"purpose" json:"purpose"`
	MaterialCount int     `db:"material_count" json:"material_count"`
	TotalQuantity float64 `db:"total_quantity" json:"total_quantity"`
}

// RecipeCostLine / RecipeCost は valuation パッケージの原価計算結果です。
type RecipeCostLine struct {
	MaterialID   int64   `json:"m_id"`
	MaterialCode string  `json:"material_code"`
	MaterialName string  `json:"material_name"`
	MaterialType string  `json:"material_type"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Cost         string  `json:"cost"`
}

type RecipeCost struct {
	ProductID int64                       `json:"p_id"`
	Lines     map[string][]RecipeCostLine `json:"lines"`
	Totals    map[string]string           `json:"totals"`
}
