package importer

import (
	"io"

	"github.com/shopspring/decimal"
)

// Format names a supported notebook layout. There is only one today; the
// indirection keeps room for other spreadsheet shapes.
type Format string

const FormatNotebook Format = "notebook"

// Row is one customer line parsed out of a notebook export.
type Row struct {
	Name        string
	Description string
	Address     *string
	OpeningDebt decimal.Decimal
}

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}
