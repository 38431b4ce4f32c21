package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"prodledger/model"
	"prodledger/units"
	"strings"

	"go.uber.org/zap"
)

// ProductSeedRow は products.csv の1行です。部門は名前で指定します。
type ProductSeedRow struct {
	SectionName string
	Name        string
	Code        string
	BasePrice   float64
	SKU         string
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// ParseProductsCSV はヘッダー付きの製品CSV (section,name,code,base_price,sku) を読み込みます。
func ParseProductsCSV(r io.Reader) ([]ProductSeedRow, error) {
	reader := newCSVReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read products header: %w", err)
	}
	colIndex, err := getColIndex(header, []string{"section", "name"})
	if err != nil {
		return nil, err
	}

	var rows []ProductSeedRow
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			zap.S().Warnf("WARN: skipping unreadable products.csv line %d: %v", line, err)
			continue
		}
		row := ProductSeedRow{
			SectionName: cell(record, colIndex, "section"),
			Name:        cell(record, colIndex, "name"),
			Code:        cell(record, colIndex, "code"),
			BasePrice:   parseFloat(cell(record, colIndex, "base_price")),
			SKU:         cell(record, colIndex, "sku"),
		}
		if row.SectionName == "" || row.Name == "" {
			zap.S().Warnf("WARN: skipping products.csv line %d without section or name", line)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseMaterialsCSV はヘッダー付きの資材CSV (name,code,price,unit,type) を読み込みます。
func ParseMaterialsCSV(r io.Reader) ([]model.MaterialInput, error) {
	reader := newCSVReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read materials header: %w", err)
	}
	colIndex, err := getColIndex(header, []string{"name"})
	if err != nil {
		return nil, err
	}

	var materials []model.MaterialInput
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			zap.S().Warnf("WARN: skipping unreadable materials.csv line %d: %v", line, err)
			continue
		}
		name := cell(record, colIndex, "name")
		if name == "" {
			continue
		}
		materialType := strings.ToUpper(cell(record, colIndex, "type"))
		if materialType != model.MaterialTypePM {
			materialType = model.MaterialTypeRM
		}
		materials = append(materials, model.MaterialInput{
			Name:  name,
			Code:  cell(record, colIndex, "code"),
			Price: parseFloat(cell(record, colIndex, "price")),
			Unit:  units.Normalize(cell(record, colIndex, "unit"), materialType),
			Type:  materialType,
		})
	}
	return materials, nil
}
