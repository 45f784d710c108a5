package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/medguard-next/internal/service"
)

const sheetName = "Sheet1"

// WriteExcel 渲染 Excel 报表
func WriteExcel(rows []service.BatchView, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue(sheetName, "A1", ReportTitle); err != nil {
		return nil, err
	}

	// 表头在第 2 行，标题独占第 1 行
	for i, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for j, value := range rowCells(row) {
			cell, err := excelize.CoordinatesToCellName(j+1, i+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	footerCell := fmt.Sprintf("A%d", len(rows)+4)
	if err := f.SetCellValue(sheetName, footerCell, footerText(generatedAt)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
