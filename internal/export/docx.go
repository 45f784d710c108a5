package export

import (
	"bytes"
	"time"

	"github.com/fumiama/go-docx"

	"github.com/medguard-next/internal/service"
)

// WriteDocx 渲染 Word 报表
func WriteDocx(rows []service.BatchView, generatedAt time.Time) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph().Justification("center")
	title.AddText(ReportTitle).Size("36").Bold()

	table := doc.AddTable(len(rows)+1, len(columnHeaders), 9000, nil)
	for i, header := range columnHeaders {
		table.TableRows[0].TableCells[i].AddParagraph().AddText(header).Bold()
	}
	for i, row := range rows {
		cells := table.TableRows[i+1].TableCells
		for j, cell := range rowCells(row) {
			cells[j].AddParagraph().AddText(cell)
		}
	}

	doc.AddParagraph()
	doc.AddParagraph().AddText(footerText(generatedAt)).Italic()

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
