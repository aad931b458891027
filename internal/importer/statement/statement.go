package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/prajwal2403/fintrack/internal/encoding"
	"github.com/prajwal2403/fintrack/internal/transaction"
)

// Parser reads generic CSV expense exports and produces transaction drafts.
// It locates the header row by matching column names, so leading report
// banners and trailing footer rows are tolerated.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

const (
	colDate        = "date"
	colAmount      = "amount"
	colDescription = "description"
	colCategory    = "category"
)

var requiredCols = []string{colDate, colAmount, colDescription}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

func (p *Parser) Parse(r io.Reader) ([]transaction.Draft, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = detectDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := detectHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected columns %s", strings.Join(requiredCols, ", "))
	}

	return parseRows(cols, rows[headerIdx+1:])
}

// detectDelimiter picks between comma and semicolon based on the first
// non-empty line. Spreadsheet exports in comma-decimal locales use ';'.
func detectDelimiter(raw []byte) rune {
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';'
		}

		return ','
	}

	return ','
}

// colIndex maps normalized column names to their position in the row.
type colIndex map[string]int

func detectHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if matchesRequired(cols) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func matchesRequired(cols colIndex) bool {
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts drafts from data rows. Rows without a parseable date or
// amount (banners, running balances, footers) are skipped rather than failing
// the whole file.
func parseRows(cols colIndex, rows [][]string) ([]transaction.Draft, error) {
	dateIdx := cols[colDate]
	amountIdx := cols[colAmount]
	descIdx := cols[colDescription]

	catIdx, hasCategory := cols[colCategory]

	var drafts []transaction.Draft

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, ok := parseAmount(cellValue(row, amountIdx))
		if !ok {
			continue
		}

		draft := transaction.Draft{
			Amount: amount,
			Date:   date,
		}

		if desc := cellValue(row, descIdx); desc != "" {
			draft.Description = &desc
		}

		if hasCategory {
			if cat := cellValue(row, catIdx); cat != "" {
				draft.Category = &cat
			}
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount accepts dot-decimal ("1234.56") and European ("1.234,56")
// notations. Signs are dropped: expense exports carry debits as negatives.
func parseAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}

	clean := s
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsZero() {
		return decimal.Decimal{}, false
	}

	return d.Abs(), true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
