package statement

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
	"github.com/FACorreiaa/statement-extractor/internal/domain/extract"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(issuer.NewDefaultRegistry())
	require.NoError(t, err)
	return p
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPipeline_BuiltinIssuers(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		issuer       issuer.ID
		cardholder   string
		last4        string
		periodStart  time.Time
		periodEnd    time.Time
		dueDate      time.Time
		amountMinor  int64
		currency     string
		variant      string
		transactions int
	}{
		{
			name: "American Express", text: amexStatement, issuer: issuer.AmericanExpress,
			cardholder: "JANE H MORRISON", last4: "1005",
			periodStart: date(2024, 7, 15), periodEnd: date(2024, 8, 14),
			dueDate: date(2024, 9, 8), amountMinor: 341209, currency: "USD",
			variant: "Platinum", transactions: 3,
		},
		{
			name: "Chase", text: chaseStatement, issuer: issuer.Chase,
			cardholder: "DAVID R CHEN", last4: "4421",
			periodStart: date(2024, 7, 15), periodEnd: date(2024, 8, 14),
			dueDate: date(2024, 9, 11), amountMinor: 129488, currency: "USD",
			variant: "Sapphire Preferred", transactions: 3,
		},
		{
			name: "Citi", text: citiStatement, issuer: issuer.Citi,
			cardholder: "MARIA L GONZALES", last4: "0093",
			periodStart: date(2024, 7, 15), periodEnd: date(2024, 8, 14),
			dueDate: date(2024, 9, 9), amountMinor: 84217, currency: "USD",
			variant: "Double Cash", transactions: 2,
		},
		{
			name: "Bank of America", text: bofaStatement, issuer: issuer.BankOfAmerica,
			cardholder: "ROBERT T WILSON JR", last4: "7731",
			periodStart: date(2024, 7, 15), periodEnd: date(2024, 8, 14),
			dueDate: date(2024, 9, 11), amountMinor: 215640, currency: "USD",
			variant: "Customized Cash Rewards", transactions: 3,
		},
		{
			name: "HSBC", text: hsbcStatement, issuer: issuer.HSBC,
			cardholder: "SARAH OKONKWO", last4: "5512",
			periodStart: date(2024, 7, 15), periodEnd: date(2024, 8, 14),
			dueDate: date(2024, 9, 8), amountMinor: 190531, currency: "GBP",
			variant: "Premier", transactions: 3,
		},
	}

	pipeline := newTestPipeline(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := pipeline.Parse(context.Background(), Input{ID: "doc-1", Text: tt.text})
			require.NoError(t, err)

			assert.Equal(t, tt.issuer, result.Issuer)
			assert.Equal(t, StatusComplete, result.Status)

			name := result.Field(issuer.FieldCardholderName)
			require.True(t, name.Found())
			assert.Equal(t, tt.cardholder, name.Value.Text)

			last4 := result.Field(issuer.FieldCardLast4)
			require.True(t, last4.Found())
			assert.Equal(t, tt.last4, last4.Value.Text)

			period := result.Field(issuer.FieldBillingPeriod)
			require.True(t, period.Found())
			assert.Equal(t, tt.periodStart, period.Value.PeriodStart)
			assert.Equal(t, tt.periodEnd, period.Value.PeriodEnd)

			due := result.Field(issuer.FieldDueDate)
			require.True(t, due.Found())
			assert.Equal(t, tt.dueDate, due.Value.Date)

			amount := result.Field(issuer.FieldAmountDue)
			require.True(t, amount.Found())
			assert.Equal(t, tt.amountMinor, amount.Value.Amount.Amount())
			assert.Equal(t, tt.currency, amount.Value.Amount.Currency())

			variant := result.Field(issuer.FieldCardVariant)
			require.True(t, variant.Found())
			assert.Equal(t, tt.variant, variant.Value.Text)

			assert.Len(t, result.Transactions, tt.transactions)

			// Exactly one entry per required field, in fixed order.
			require.GreaterOrEqual(t, len(result.Fields), 5)
			for i, field := range issuer.RequiredFields() {
				assert.Equal(t, field, result.Fields[i].Field)
			}
		})
	}
}

func TestPipeline_UnidentifiedDocument(t *testing.T) {
	pipeline := newTestPipeline(t)

	result, err := pipeline.Parse(context.Background(), Input{ID: "doc-x", Text: unknownStatement})
	require.NoError(t, err)

	assert.Equal(t, issuer.Unknown, result.Issuer)
	assert.Equal(t, StatusUnidentified, result.Status)

	// All fields NotFound: not Ambiguous, not conversion-failed.
	require.Len(t, result.Fields, 5)
	for _, fr := range result.Fields {
		assert.Equal(t, extract.OutcomeNotFound, fr.Outcome, "field %s", fr.Field)
	}

	// Transaction parsing is independent of identification.
	require.Len(t, result.Transactions, 3)
	assert.Equal(t, int64(-6000), result.Transactions[2].Amount.Amount())
}

func TestPipeline_PartialStatement(t *testing.T) {
	pipeline := newTestPipeline(t)

	// Chase letterhead but the due date line is missing.
	text := `CHASE
Cardmember Services
www.chase.com
Statement prepared for DAVID R CHEN
Account ending in 4421
Opening/Closing Date: 07/15/24 - 08/14/24
New Balance: $1,294.88`

	result, err := pipeline.Parse(context.Background(), Input{ID: "doc-p", Text: text})
	require.NoError(t, err)

	assert.Equal(t, issuer.Chase, result.Issuer)
	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, extract.OutcomeNotFound, result.Field(issuer.FieldDueDate).Outcome)
	// The other fields still extracted.
	assert.True(t, result.Field(issuer.FieldCardLast4).Found())
}

func TestPipeline_MalformedLast4IsPartial(t *testing.T) {
	pipeline := newTestPipeline(t)

	text := `CHASE
Cardmember Services
www.chase.com
Account ending in 442
New Balance: $10.00`

	result, err := pipeline.Parse(context.Background(), Input{ID: "doc-m", Text: text})
	require.NoError(t, err)

	got := result.Field(issuer.FieldCardLast4)
	assert.Equal(t, extract.OutcomeConversionFailed, got.Outcome)
	assert.Equal(t, "442", got.Raw)
	assert.Nil(t, got.Value)
	assert.Equal(t, StatusPartial, result.Status)
}

func TestPipeline_Idempotent(t *testing.T) {
	pipeline := newTestPipeline(t)
	in := Input{ID: "doc-1", Text: amexStatement}

	first, err := pipeline.Parse(context.Background(), in)
	require.NoError(t, err)
	second, err := pipeline.Parse(context.Background(), in)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestPipeline_RejectsUndecodableText(t *testing.T) {
	pipeline := newTestPipeline(t)

	_, err := pipeline.Parse(context.Background(), Input{ID: "doc-bad", Text: string([]byte{0xff, 0xfe})})
	assert.ErrorIs(t, err, document.ErrInvalidText)
}

func TestPipeline_CancelledContext(t *testing.T) {
	pipeline := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Parse(ctx, Input{ID: "doc-1", Text: amexStatement})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_RegressionIsolation(t *testing.T) {
	// Adding a new issuer profile must not change results for documents of
	// pre-existing issuers.
	baseline := newTestPipeline(t)

	extended := issuer.NewRegistry()
	for _, p := range issuer.BuiltinProfiles() {
		require.NoError(t, extended.Register(p))
	}
	require.NoError(t, extended.Register(&issuer.Profile{
		ID:          "sometown",
		DisplayName: "Sometown Credit Union",
		Currency:    "USD",
		Signatures:  []issuer.Signature{{Pattern: "sometown credit union"}},
		Rules: map[issuer.Field][]issuer.Rule{
			issuer.FieldCardLast4: {{Pattern: `(?i)Member ID (\d+)`, Priority: 1}},
		},
	}))
	require.NoError(t, extended.Build())
	extendedPipeline, err := NewPipeline(extended)
	require.NoError(t, err)

	for name, text := range map[string]string{
		"amex": amexStatement, "chase": chaseStatement, "citi": citiStatement,
		"bofa": bofaStatement, "hsbc": hsbcStatement,
	} {
		t.Run(name, func(t *testing.T) {
			in := Input{ID: "doc", Text: text}
			before, err := baseline.Parse(context.Background(), in)
			require.NoError(t, err)
			after, err := extendedPipeline.Parse(context.Background(), in)
			require.NoError(t, err)

			beforeJSON, err := json.Marshal(before.Fields)
			require.NoError(t, err)
			afterJSON, err := json.Marshal(after.Fields)
			require.NoError(t, err)
			assert.Equal(t, beforeJSON, afterJSON)
		})
	}

	t.Run("and the new issuer now resolves", func(t *testing.T) {
		result, err := extendedPipeline.Parse(context.Background(), Input{ID: "doc", Text: unknownStatement})
		require.NoError(t, err)
		assert.Equal(t, issuer.ID("sometown"), result.Issuer)
	})
}

func TestPipeline_PositionMetadataInput(t *testing.T) {
	pipeline := newTestPipeline(t)

	lines := make([]document.SourceLine, 0, 8)
	for _, text := range []string{
		"HSBC Bank plc",
		"Primary cardholder: SARAH OKONKWO",
		"Card number: **** 5512",
	} {
		lines = append(lines, document.SourceLine{Text: text, BBox: &document.BoundingBox{Page: 1}})
	}

	result, err := pipeline.Parse(context.Background(), Input{ID: "doc-pos", Lines: lines})
	require.NoError(t, err)

	assert.Equal(t, issuer.HSBC, result.Issuer)
	assert.True(t, result.Field(issuer.FieldCardLast4).Found())
}
