// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\units\units.go

package units

import (
	"prodledger/model"
	"strings"
)

// 表記ゆれ → 正規単位名
var internalMap = map[string]string{
	"kg":        "kg",
	"kgs":       "kg",
	"kilogram":  "kg",
	"kilograms": "kg",
	"g":         "g",
	"gm":        "g",
	"gms":       "g",
	"gram":      "g",
	"grams":     "g",
	"l":         "ltr",
	"lt":        "ltr",
	"ltr":       "ltr",
	"litre":     "ltr",
	"liter":     "ltr",
	"ml":        "ml",
	"pc":        "pcs",
	"pcs":       "pcs",
	"piece":     "pcs",
	"pieces":    "pcs",
	"nos":       "pcs",
	"roll":      "roll",
	"rolls":     "roll",
	"m":         "m",
	"mtr":       "m",
	"meter":     "m",
	"ctn":       "ctn",
	"carton":    "ctn",
	"cartons":   "ctn",
}

// DefaultFor は資材区分の既定単位です (原料は kg、包材は pcs)。
func DefaultFor(materialType string) string {
	if materialType == model.MaterialTypePM {
		return "pcs"
	}
	return "kg"
}

// Normalize は単位表記を正規化します。空なら区分の既定単位、未知の表記はそのまま返します。
func Normalize(unit, materialType string) string {
	u := strings.TrimSpace(unit)
	if u == "" {
		return DefaultFor(materialType)
	}
	if name, ok := internalMap[strings.ToLower(strings.TrimSuffix(u, "."))]; ok {
		return name
	}
	return u
}
