package importer

import (
	"fmt"
	"io"

	"github.com/prajwal2403/fintrack/internal/importer/statement"
	"github.com/prajwal2403/fintrack/internal/transaction"
)

type Service struct {
	statementImporter Importer
}

func NewService() *Service {
	return &Service{
		statementImporter: statement.New(),
	}
}

// Import parses an uploaded file into transaction drafts. Ownership and
// validation are the transaction service's concern, not the parser's.
func (s *Service) Import(format Format, r io.Reader) ([]transaction.Draft, error) {
	var imp Importer

	switch format {
	case FormatStatement:
		imp = s.statementImporter
	default:
		return nil, fmt.Errorf("unknown statement format: %s", format)
	}

	return imp.Parse(r)
}
