package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity は数値・文字列・null のいずれでも受け付ける数量です。
// 解釈できない値 (NaN / Inf を含む) は 0 として扱います。
type Quantity float64

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		*q = 0
		return nil
	}
	switch t := v.(type) {
	case float64:
		*q = Quantity(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			f = 0
		}
		*q = Quantity(f)
	default:
		*q = 0
	}
	return nil
}

// RecipeImportItem の Code は資材コード (内部IDではない) です。
// Excel 側の列名に合わせて JSON キーは "id" のまま。
type RecipeImportItem struct {
	Code string   `json:"id"`
	Unit string   `json:"unit,omitempty"`
	Qty  Quantity `json:"qty"`
}

// RecipeDocument はレシピ取込の入力 (パース後の形) です。
type RecipeDocument struct {
	ProductCode string             `json:"product_code,omitempty"`
	ProductName string             `json:"product_name,omitempty"`
	RM          []RecipeImportItem `json:"rm"`
	CartonRM    []RecipeImportItem `json:"carton_rm"`
	PM          []RecipeImportItem `json:"pm"`
	CartonPM    []RecipeImportItem `json:"carton_pm"`
}

type RecipeImportDetails struct {
	ProductID        int64  `json:"productId"`
	ProductCode      string `json:"productCode"`
	RMInserted       int    `json:"rmInserted"`
	CartonRMInserted int    `json:"cartonRmInserted"`
	PMInserted       int    `json:"pmInserted"`
	CartonPMInserted int    `json:"cartonPmInserted"`
	TotalInserted    int    `json:"totalInserted"`
	RMSkipped        int    `json:"rmSkipped"`
	CartonRMSkipped  int    `json:"cartonRmSkipped"`
	PMSkipped        int    `json:"pmSkipped"`
	CartonPMSkipped  int    `json:"cartonPmSkipped"`
	TotalSkipped     int    `json:"totalSkipped"`
}

type RecipeImportResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Details RecipeImportDetails `json:"details"`
}
