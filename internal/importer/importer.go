package importer

import (
	"io"

	"github.com/prajwal2403/fintrack/internal/transaction"
)

// Format identifies a supported statement file layout.
type Format string

const (
	// FormatStatement is the generic CSV export layout
	// (date/amount/description columns, optional category).
	FormatStatement Format = "statement"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.Draft, error)
}
