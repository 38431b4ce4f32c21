package aggregation

import (
	"fmt"
	"prodledger/model"

	"github.com/xuri/excelize/v2"
)

var (
	sectionHeaders = []string{"Section", "Products", "Batch", "Carton", "Value"}
	dailyHeaders   = []string{"Date", "Products", "Batch", "Carton", "Value"}
)

// MonthlyReportWorkbook は月次集計を「Sections」「Daily」の2シートのブックにします。
// 呼び出し側で Close してください。
func MonthlyReportWorkbook(summary model.MonthlyProductionSummary) (*excelize.File, string, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to create total style: %w", err)
	}

	const sectionSheet = "Sections"
	if err := f.SetSheetName("Sheet1", sectionSheet); err != nil {
		f.Close()
		return nil, "", err
	}
	writeHeader(f, sectionSheet, sectionHeaders, headerStyle)
	for i, s := range summary.SectionWise {
		row := i + 2
		f.SetCellValue(sectionSheet, fmt.Sprintf("A%d", row), s.SectionName)
		f.SetCellValue(sectionSheet, fmt.Sprintf("B%d", row), s.TotalProducts)
		f.SetCellValue(sectionSheet, fmt.Sprintf("C%d", row), s.TotalBatch)
		f.SetCellValue(sectionSheet, fmt.Sprintf("D%d", row), s.TotalCarton)
		f.SetCellValue(sectionSheet, fmt.Sprintf("E%d", row), s.TotalValue.InexactFloat64())
	}
	totalRow := len(summary.SectionWise) + 2
	f.SetCellValue(sectionSheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sectionSheet, fmt.Sprintf("B%d", totalRow), summary.TotalProducts)
	f.SetCellValue(sectionSheet, fmt.Sprintf("E%d", totalRow), summary.MonthlyTotal.InexactFloat64())
	f.SetCellStyle(sectionSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("E%d", totalRow), totalStyle)

	const dailySheet = "Daily"
	if _, err := f.NewSheet(dailySheet); err != nil {
		f.Close()
		return nil, "", err
	}
	writeHeader(f, dailySheet, dailyHeaders, headerStyle)
	for i, d := range summary.DailySummary {
		row := i + 2
		f.SetCellValue(dailySheet, fmt.Sprintf("A%d", row), d.Date)
		f.SetCellValue(dailySheet, fmt.Sprintf("B%d", row), d.TotalProducts)
		f.SetCellValue(dailySheet, fmt.Sprintf("C%d", row), d.TotalBatch)
		f.SetCellValue(dailySheet, fmt.Sprintf("D%d", row), d.TotalCarton)
		f.SetCellValue(dailySheet, fmt.Sprintf("E%d", row), d.TotalValue.InexactFloat64())
	}
	avgRow := len(summary.DailySummary) + 2
	f.SetCellValue(dailySheet, fmt.Sprintf("A%d", avgRow), "Daily average")
	f.SetCellValue(dailySheet, fmt.Sprintf("B%d", avgRow), fmt.Sprintf("%d working days", summary.WorkingDays))
	f.SetCellValue(dailySheet, fmt.Sprintf("E%d", avgRow), summary.DailyAverage.Round(2).InexactFloat64())
	f.SetCellStyle(dailySheet, fmt.Sprintf("A%d", avgRow), fmt.Sprintf("E%d", avgRow), totalStyle)

	colWidths := []float64{24, 10, 10, 10, 16}
	for _, sheet := range []string{sectionSheet, dailySheet} {
		for i, w := range colWidths {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetColWidth(sheet, col, col, w)
		}
	}

	filename := fmt.Sprintf("production_%04d_%02d.xlsx", summary.Year, summary.Month)
	return f, filename, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
