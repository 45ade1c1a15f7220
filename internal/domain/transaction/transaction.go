// Package transaction scans normalized statement text for the repeating
// date/merchant/amount rows of a transaction table. The scan is independent
// of field extraction: it runs even when no issuer was identified, using the
// generic layout.
package transaction

import (
	"log/slog"
	"strings"
	"time"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
	"github.com/FACorreiaa/statement-extractor/internal/domain/extract"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

// Record is one parsed transaction row, in document order.
type Record struct {
	Date     time.Time    `json:"date"`
	Merchant string       `json:"merchant"`
	Amount   *money.Money `json:"amount"`
}

// Parser extracts transaction records using an issuer's table layout.
// It holds no per-document state and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a transaction table parser. A nil logger uses the default.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse scans for a transaction block bounded by the layout's header and
// footer anchors and parses each row inside it. Rows that do not match the
// row pattern are skipped, tolerating continuation lines and subtotal noise.
// No recognizable block yields an empty list, never an error.
func (p *Parser) Parse(doc *document.RawDocument, layout issuer.TransactionLayout, currency string) []Record {
	rowRe := layout.RowRegexp()
	if rowRe == nil || doc.Empty() {
		return nil
	}
	if currency == "" {
		currency = money.USD
	}

	start := findAnchor(doc.Lines, layout.HeaderAnchors, 0)
	if start < 0 {
		return nil
	}

	var records []Record
	for _, line := range doc.Lines[start+1:] {
		if matchesAnchor(line.Text, layout.FooterAnchors) {
			break
		}

		m := rowRe.FindStringSubmatch(line.Text)
		if m == nil || len(m) < 4 {
			continue
		}

		date, err := extract.ParseDate(m[1], layout.DateFormats)
		if err != nil {
			p.logger.Debug("transaction row skipped", "line", line.Number, "err", err)
			continue
		}
		amount, err := money.Parse(m[3], currency)
		if err != nil {
			p.logger.Debug("transaction row skipped", "line", line.Number, "err", err)
			continue
		}

		records = append(records, Record{
			Date:     date,
			Merchant: document.CollapseSpaces(m[2]),
			Amount:   amount,
		})
	}
	return records
}

// findAnchor returns the index of the first line at or after from that
// contains any anchor, or -1.
func findAnchor(lines []document.Line, anchors []string, from int) int {
	for i := from; i < len(lines); i++ {
		if matchesAnchor(lines[i].Text, anchors) {
			return i
		}
	}
	return -1
}

func matchesAnchor(line string, anchors []string) bool {
	lower := strings.ToLower(line)
	for _, anchor := range anchors {
		if anchor != "" && strings.Contains(lower, strings.ToLower(anchor)) {
			return true
		}
	}
	return false
}
