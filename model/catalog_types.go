// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\model\catalog_types.go
package model

// 資材区分 (原料 / 包材)
const (
	MaterialTypeRM = "RM"
	MaterialTypePM = "PM"
)

type Section struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Product struct {
	ID          int64   `db:"id" json:"id"`
	SectionID   int64   `db:"s_id" json:"s_id"`
	Name        string  `db:"name" json:"name"`
	Code        string  `db:"code" json:"code"`
	BasePrice   float64 `db:"base_price" json:"base_price"`
	SKU         string  `db:"sku" json:"sku"`
	SectionName string  `db:"section_name" json:"section_name,omitempty"`
}

// ProductInput は製品の登録・更新リクエストです。
type ProductInput struct {
	SectionID int64   `json:"s_id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	BasePrice float64 `json:"base_price"`
	SKU       string  `json:"sku"`
}

// ProductInfo は製品ごとの自由属性 (正味重量、工程ロス率など) です。
type ProductInfo struct {
	ID        int64   `db:"id" json:"id"`
	ProductID int64   `db:"p_id" json:"p_id"`
	Name      string  `db:"name" json:"name"`
	Unit      string  `db:"unit" json:"unit"`
	Value     float64 `db:"value" json:"value"`
}

type ProductWithInfo struct {
	Product
	Infos []ProductInfo `json:"infos"`
}

// Material の Code は外部 (Excel レシピ) との突合キーです。ID は内部専用。
type Material struct {
	ID    int64   `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
	Code  string  `db:"code" json:"code"`
	Unit  string  `db:"unit" json:"unit"`
	Type  string  `db:"type" json:"type"`
}

type MaterialInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Code  string  `json:"code"`
	Unit  string  `json:"unit"`
	Type  string  `json:"type"`
}

// GroupedMaterials は資材区分ごとの一覧です。
type GroupedMaterials struct {
	RM []Material `json:"RM"`
	PM []Material `json:"PM"`
}
