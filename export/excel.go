package export

import (
	"fmt"
	"io"
	"iter"

	"github.com/beevik/etree"

	"github.com/mkravets/gridact/grid"
	"github.com/mkravets/gridact/model"
)

const spreadsheetNS = "urn:schemas-microsoft-com:office:spreadsheet"

// WriteExcelXML renders tasks as a single-sheet SpreadsheetML 2003
// workbook, the XML dialect old and new Excel versions both open.
func WriteExcelXML(w io.Writer, sheet string, columns []grid.Column, tasks iter.Seq[model.Task]) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	workbook := doc.CreateElement("Workbook")
	workbook.CreateAttr("xmlns", spreadsheetNS)
	workbook.CreateAttr("xmlns:ss", spreadsheetNS)

	worksheet := workbook.CreateElement("Worksheet")
	if sheet == "" {
		sheet = "Sheet1"
	}

	worksheet.CreateAttr("ss:Name", sheet)

	table := worksheet.CreateElement("Table")

	header := table.CreateElement("Row")
	for _, column := range columns {
		appendCell(header, column.Title, false)
	}

	for task := range tasks {
		row := table.CreateElement("Row")
		for _, column := range columns {
			value, numeric := cellValue(task, column.Key)
			appendCell(row, value, numeric)
		}
	}

	doc.Indent(2)

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}

	return nil
}

func appendCell(row *etree.Element, value string, numeric bool) {
	cellType := "String"
	if numeric {
		cellType = "Number"
	}

	data := row.CreateElement("Cell").CreateElement("Data")
	data.CreateAttr("ss:Type", cellType)
	data.SetText(value)
}
