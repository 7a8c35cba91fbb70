package export

import (
	"hr-recruitment/internal/usecase"

	"github.com/gocarina/gocsv"
)

// utf8BOM lets spreadsheet apps detect the encoding of Arabic labels.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type CSVRenderer struct{}

func NewCSVRenderer() CSVRenderer {
	return CSVRenderer{}
}

func (CSVRenderer) Format() string      { return "csv" }
func (CSVRenderer) Extension() string   { return "csv" }
func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVRenderer) Render(t usecase.ExportTable) ([]byte, error) {
	rows := t.Rows
	if rows == nil {
		rows = []usecase.ApplicationExportRow{}
	}
	b, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, utf8BOM...), b...), nil
}
