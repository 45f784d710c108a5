package export

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/medguard-next/internal/service"
)

// 各列宽度（毫米），横向 A4 可容纳整行
var pdfColumnWidths = []float64{52, 38, 45, 25, 25, 30, 40}

// WritePDF 渲染 PDF 报表
func WritePDF(rows []service.BatchView, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, ReportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writePDFHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		// 翻页后重画表头
		if pdf.GetY() > 180 {
			pdf.AddPage()
			writePDFHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		for i, cell := range rowCells(row) {
			pdf.CellFormat(pdfColumnWidths[i], 7, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, footerText(generatedAt), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(244, 244, 244)
	for i, header := range columnHeaders {
		pdf.CellFormat(pdfColumnWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}
