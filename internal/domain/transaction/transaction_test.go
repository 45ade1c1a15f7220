package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
)

func compiledLayout(t *testing.T, layout issuer.TransactionLayout) issuer.TransactionLayout {
	t.Helper()
	reg := issuer.NewRegistry()
	p := &issuer.Profile{ID: "test", Layout: layout}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Build())
	return reg.Get("test").Layout
}

func parseDoc(t *testing.T, text string) *document.RawDocument {
	t.Helper()
	doc, err := document.Normalize(text)
	require.NoError(t, err)
	return doc
}

func TestParser_Parse(t *testing.T) {
	layout := compiledLayout(t, issuer.TransactionLayout{
		HeaderAnchors: []string{"Account Activity"},
		FooterAnchors: []string{"Totals Year-to-Date"},
		RowPattern:    `^(\d{2}/\d{2}/\d{4}) (.+?) (\(?-?[\d,]+\.\d{2}\)?)$`,
		DateFormats:   []string{"01/02/2006"},
	})

	t.Run("parses rows in document order", func(t *testing.T) {
		doc := parseDoc(t, `ACCOUNT ACTIVITY
08/02/2024 TRADER JOE'S #552 SEATTLE WA 54.80
08/05/2024 NETFLIX.COM 15.49
08/07/2024 ONLINE PAYMENT (500.00)
Totals Year-to-Date`)

		records := NewParser(nil).Parse(doc, layout, "USD")

		require.Len(t, records, 3)
		assert.Equal(t, "TRADER JOE'S #552 SEATTLE WA", records[0].Merchant)
		assert.Equal(t, int64(5480), records[0].Amount.Amount())
		assert.Equal(t, time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC), records[0].Date)
		// Credits keep their sign.
		assert.Equal(t, int64(-50000), records[2].Amount.Amount())
	})

	t.Run("skips noise lines without failing", func(t *testing.T) {
		doc := parseDoc(t, `Account Activity
08/02/2024 GROCERY MART 12.00
continued on next page
pending authorization holds are not shown
08/03/2024 COFFEE BAR 4.50
Totals Year-to-Date`)

		records := NewParser(nil).Parse(doc, layout, "USD")
		require.Len(t, records, 2)
	})

	t.Run("stops at the footer anchor", func(t *testing.T) {
		doc := parseDoc(t, `Account Activity
08/02/2024 GROCERY MART 12.00
Totals Year-to-Date
08/09/2024 AFTER THE TABLE 99.99`)

		records := NewParser(nil).Parse(doc, layout, "USD")
		require.Len(t, records, 1)
	})

	t.Run("no recognizable block yields an empty list", func(t *testing.T) {
		doc := parseDoc(t, "Dear customer,\nyour statement is enclosed.")
		assert.Empty(t, NewParser(nil).Parse(doc, layout, "USD"))
	})

	t.Run("rows with unparsable dates are skipped", func(t *testing.T) {
		doc := parseDoc(t, `Account Activity
13/45/2024 NOT A DATE 10.00
08/03/2024 REAL ROW 4.50`)

		records := NewParser(nil).Parse(doc, layout, "USD")
		require.Len(t, records, 1)
		assert.Equal(t, "REAL ROW", records[0].Merchant)
	})

	t.Run("empty document yields an empty list", func(t *testing.T) {
		assert.Empty(t, NewParser(nil).Parse(parseDoc(t, ""), layout, "USD"))
	})
}

func TestParser_GenericLayout(t *testing.T) {
	// Transaction parsing is independent of issuer identification: the
	// generic layout recognizes a conventional activity table on its own.
	doc := parseDoc(t, `SOMETOWN CREDIT UNION
Transactions
08/01/2024 GROCERY MART 23.10
08/02/2024 GAS STATION 41.00
08/03/2024 PAYMENT 60.00 CR
Total for this period`)

	records := NewParser(nil).Parse(doc, issuer.CompiledGenericLayout(), "USD")

	require.Len(t, records, 3)
	assert.Equal(t, int64(-6000), records[2].Amount.Amount())
}
