// Package export 把批次列表渲染成可下载的报表文件。
// 三种格式共用同一份行数据，表头与页脚保持一致。
package export

import (
	"time"

	"github.com/medguard-next/internal/constants"
	"github.com/medguard-next/internal/service"
)

// 报表固定文案
const (
	ReportTitle = "Registered Drugs Report"

	FilenamePDF   = "registered_drugs.pdf"
	FilenameDocx  = "registered_drugs.docx"
	FilenameExcel = "registered_drugs.xlsx"

	ContentTypePDF   = "application/pdf"
	ContentTypeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var columnHeaders = []string{
	"Name",
	"Batch Number",
	"Manufacturer",
	"Mfg Date",
	"Expiry Date",
	"Status",
	"Registered On",
}

func footerText(generatedAt time.Time) string {
	return "Generated on " + generatedAt.Format(constants.DateTimeLayout) + " by Admin System"
}

func rowCells(row service.BatchView) []string {
	return []string{
		orNA(row.Name),
		orNA(row.BatchNumber),
		orNA(row.Manufacturer),
		orNA(row.MfgDate),
		orNA(row.ExpiryDate),
		row.StatusLabel,
		orNA(row.RegisteredOn),
	}
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
