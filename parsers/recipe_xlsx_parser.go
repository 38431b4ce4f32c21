// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\parsers\recipe_xlsx_parser.go
package parsers

import (
	"fmt"
	"io"
	"prodledger/model"
	"prodledger/units"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// レシピシートの列 (0始まり)
const (
	colFlag   = 0 // A: 行が有効かどうかの目印
	colCode   = 1 // B: 資材コード
	colUnit   = 3 // D: 単位
	colBatch  = 4 // E: バッチあたり数量
	colCarton = 5 // F: カートンあたり数量
)

// ParseRecipeWorkbook はレシピブックの各シートを取込ドキュメントに変換し、製品名順で返します。
// skipSheets に含まれるシートは読みません。
func ParseRecipeWorkbook(r io.Reader, skipSheets []string) ([]model.RecipeDocument, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	skip := make(map[string]bool, len(skipSheets))
	for _, s := range skipSheets {
		skip[strings.TrimSpace(s)] = true
	}

	var docs []model.RecipeDocument
	for _, sheet := range f.GetSheetList() {
		if skip[sheet] {
			continue
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		doc, ok := parseRecipeSheet(sheet, rows)
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return strings.ToLower(docs[i].ProductName) < strings.ToLower(docs[j].ProductName)
	})
	return docs, nil
}

// parseRecipeSheet は1行目の見出し [製品コード, 番号, 製品名, RM開始行, RM終了行, PM開始行, PM終了行] を読み、
// 指定行範囲から原料・包材を取り出します。
func parseRecipeSheet(sheet string, rows [][]string) (model.RecipeDocument, bool) {
	var doc model.RecipeDocument
	if len(rows) == 0 {
		return doc, false
	}

	var head []string
	for _, v := range rows[0] {
		if v = strings.TrimSpace(v); v != "" {
			head = append(head, v)
		}
	}
	if len(head) < 3 {
		zap.S().Warnf("WARN: sheet %s has no recipe header, skipping", sheet)
		return doc, false
	}
	doc.ProductCode = head[0]
	doc.ProductName = head[2]

	bound := func(i int) int {
		if i >= len(head) {
			return 0
		}
		n, err := strconv.ParseFloat(head[i], 64)
		if err != nil {
			return 0
		}
		return int(n)
	}
	rmStart, rmEnd, pmStart, pmEnd := bound(3), bound(4), bound(5), bound(6)

	doc.RM, doc.CartonRM = []model.RecipeImportItem{}, []model.RecipeImportItem{}
	for _, row := range rowRange(rows, rmStart, rmEnd) {
		if at(row, colFlag) == "" || at(row, colBatch) == "" || at(row, colCarton) == "" {
			continue
		}
		code, unit := at(row, colCode), units.Normalize(at(row, colUnit), model.MaterialTypeRM)
		doc.RM = append(doc.RM, model.RecipeImportItem{Code: code, Unit: unit, Qty: roundQty(at(row, colBatch), 4)})
		doc.CartonRM = append(doc.CartonRM, model.RecipeImportItem{Code: code, Unit: unit, Qty: roundQty(at(row, colCarton), 5)})
	}

	doc.PM, doc.CartonPM = []model.RecipeImportItem{}, []model.RecipeImportItem{}
	for _, row := range rowRange(rows, pmStart, pmEnd) {
		if at(row, colFlag) == "" {
			continue
		}
		code, unit := at(row, colCode), units.Normalize(at(row, colUnit), model.MaterialTypePM)
		doc.PM = append(doc.PM, model.RecipeImportItem{Code: code, Unit: unit, Qty: roundQty(at(row, colBatch), 4)})
		doc.CartonPM = append(doc.CartonPM, model.RecipeImportItem{Code: code, Unit: unit, Qty: roundQty(at(row, colCarton), 5)})
	}
	return doc, true
}

// rowRange は1始まりの行番号 start..end (両端含む) を返します。
func rowRange(rows [][]string, start, end int) [][]string {
	if start < 1 || end < start {
		return nil
	}
	if end > len(rows) {
		end = len(rows)
	}
	if start > end {
		return nil
	}
	return rows[start-1 : end]
}

func at(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// roundQty は数量を places 桁に丸めます。数値でなければ 0 です。
func roundQty(s string, places int32) model.Quantity {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return model.Quantity(d.Round(places).InexactFloat64())
}
