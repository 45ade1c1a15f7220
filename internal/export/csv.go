// Package export renders statement results to tabular formats. The JSON shape
// is the canonical output; these writers flatten it for spreadsheet use with
// explicit markers so a missing value is never mistaken for an empty one.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/statement-extractor/internal/domain/extract"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

const (
	markerNotFound  = "NOT FOUND"
	markerAmbiguous = "AMBIGUOUS"
	markerInvalid   = "INVALID"

	dateLayout = "2006-01-02"
)

type statementRow struct {
	DocumentID     string `csv:"document_id"`
	Issuer         string `csv:"issuer"`
	Status         string `csv:"status"`
	CardholderName string `csv:"cardholder_name"`
	CardLast4      string `csv:"card_last4"`
	BillingPeriod  string `csv:"billing_period"`
	DueDate        string `csv:"due_date"`
	AmountDue      string `csv:"amount_due"`
	CardVariant    string `csv:"card_variant"`
	Transactions   int    `csv:"transactions"`
}

type transactionRow struct {
	DocumentID string `csv:"document_id"`
	Date       string `csv:"date"`
	Merchant   string `csv:"merchant"`
	Amount     string `csv:"amount"`
	Currency   string `csv:"currency"`
}

// WriteStatementsCSV writes one row per statement result.
func WriteStatementsCSV(w io.Writer, results []*statement.StatementResult) error {
	rows := make([]statementRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, newStatementRow(res))
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing statements csv: %w", err)
	}
	return nil
}

// WriteTransactionsCSV writes one row per parsed transaction across all
// results, keyed by document ID.
func WriteTransactionsCSV(w io.Writer, results []*statement.StatementResult) error {
	rows := make([]transactionRow, 0, len(results))
	for _, res := range results {
		for _, txn := range res.Transactions {
			rows = append(rows, transactionRow{
				DocumentID: res.DocumentID,
				Date:       txn.Date.Format(dateLayout),
				Merchant:   txn.Merchant,
				Amount:     txn.Amount.Display(),
				Currency:   txn.Amount.Currency(),
			})
		}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing transactions csv: %w", err)
	}
	return nil
}

func newStatementRow(res *statement.StatementResult) statementRow {
	return statementRow{
		DocumentID:     res.DocumentID,
		Issuer:         string(res.Issuer),
		Status:         res.Status.String(),
		CardholderName: renderField(res.Field(issuer.FieldCardholderName)),
		CardLast4:      renderField(res.Field(issuer.FieldCardLast4)),
		BillingPeriod:  renderField(res.Field(issuer.FieldBillingPeriod)),
		DueDate:        renderField(res.Field(issuer.FieldDueDate)),
		AmountDue:      renderField(res.Field(issuer.FieldAmountDue)),
		CardVariant:    renderField(res.Field(issuer.FieldCardVariant)),
		Transactions:   len(res.Transactions),
	}
}

// renderField flattens one field result to a cell. Found values use the
// canonical representation for their kind; everything else gets a marker so
// downstream spreadsheets cannot confuse absence with an empty string.
func renderField(fr extract.FieldResult) string {
	switch fr.Outcome {
	case extract.OutcomeFound:
		return renderValue(fr.Value)
	case extract.OutcomeAmbiguous:
		return markerAmbiguous
	case extract.OutcomeConversionFailed:
		return markerInvalid
	default:
		return markerNotFound
	}
}

func renderValue(v *extract.Value) string {
	if v == nil {
		return markerNotFound
	}
	switch v.Kind {
	case issuer.KindDate:
		return v.Date.Format(dateLayout)
	case issuer.KindPeriod:
		return v.PeriodStart.Format(dateLayout) + " - " + v.PeriodEnd.Format(dateLayout)
	case issuer.KindAmount:
		if v.Amount == nil {
			return markerNotFound
		}
		return v.Amount.Display()
	default:
		return v.Text
	}
}
