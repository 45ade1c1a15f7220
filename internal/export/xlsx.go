package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

const (
	sheetStatements   = "Statements"
	sheetTransactions = "Transactions"
)

var statementHeader = []any{
	"Document ID", "Issuer", "Status", "Cardholder Name", "Card Last 4",
	"Billing Period", "Due Date", "Amount Due", "Card Variant", "Transactions",
}

var transactionHeader = []any{"Document ID", "Date", "Merchant", "Amount", "Currency"}

// WriteXLSX writes a workbook with one Statements sheet and one Transactions
// sheet. Cell values follow the same flattening rules as the CSV writers.
func WriteXLSX(w io.Writer, results []*statement.StatementResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetStatements); err != nil {
		return fmt.Errorf("renaming statements sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return fmt.Errorf("creating transactions sheet: %w", err)
	}

	if err := writeRow(f, sheetStatements, 1, statementHeader); err != nil {
		return err
	}
	for i, res := range results {
		row := newStatementRow(res)
		cells := []any{
			row.DocumentID, row.Issuer, row.Status, row.CardholderName,
			row.CardLast4, row.BillingPeriod, row.DueDate, row.AmountDue,
			row.CardVariant, row.Transactions,
		}
		if err := writeRow(f, sheetStatements, i+2, cells); err != nil {
			return err
		}
	}

	if err := writeRow(f, sheetTransactions, 1, transactionHeader); err != nil {
		return err
	}
	line := 2
	for _, res := range results {
		for _, txn := range res.Transactions {
			cells := []any{
				res.DocumentID,
				txn.Date.Format(dateLayout),
				txn.Merchant,
				txn.Amount.Display(),
				txn.Amount.Currency(),
			}
			if err := writeRow(f, sheetTransactions, line, cells); err != nil {
				return err
			}
			line++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, line int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return fmt.Errorf("addressing row %d: %w", line, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, line, err)
	}
	return nil
}
