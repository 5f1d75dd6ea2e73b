// Package notebook parses semicolon-separated CSV exports of the paper debt
// notebooks this tool replaces. Expected columns: name, description, address,
// debt — matched by header name, order-insensitive; description, address and
// debt are optional. Amounts use the European decimal format ("1.234,56").
package notebook

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/aliyevq/veresiye/internal/encoding"
	"github.com/aliyevq/veresiye/internal/importer"
)

// Header aliases seen in real exports, lowercased.
var (
	nameCols    = []string{"name", "ad", "müştəri"}
	descCols    = []string{"description", "note", "qeyd"}
	addressCols = []string{"address", "ünvan"}
	debtCols    = []string{"debt", "balance", "borc"}
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]importer.Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := detectHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected a column named %q", nameCols[0])
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps logical columns to their position in the row; -1 means the
// column is absent.
type colIndex struct {
	name    int
	desc    int
	address int
	debt    int
}

func detectHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := colIndex{
			name:    findColumn(row, nameCols),
			desc:    findColumn(row, descCols),
			address: findColumn(row, addressCols),
			debt:    findColumn(row, debtCols),
		}

		if cols.name >= 0 {
			return cols, rowIdx, true
		}
	}

	return colIndex{}, 0, false
}

func findColumn(row []string, aliases []string) int {
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range aliases {
			if name == alias {
				return i
			}
		}
	}

	return -1
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]importer.Row, error) {
	var out []importer.Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based, first row after the header

		name := cellValue(row, cols.name)
		if name == "" {
			// Blank filler and footer rows are common in spreadsheet exports.
			continue
		}

		parsed := importer.Row{
			Name:        name,
			Description: cellValue(row, cols.desc),
			OpeningDebt: decimal.Zero,
		}

		if addr := cellValue(row, cols.address); addr != "" {
			parsed.Address = &addr
		}

		if s := cellValue(row, cols.debt); s != "" {
			amount, err := parseAmount(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad debt amount %q: %w", rowNum, s, err)
			}

			parsed.OpeningDebt = amount
		}

		out = append(out, parsed)
	}

	return out, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
