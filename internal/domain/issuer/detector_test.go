package issuer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
)

func mustDoc(t *testing.T, text string) *document.RawDocument {
	t.Helper()
	doc, err := document.Normalize(text)
	require.NoError(t, err)
	return doc
}

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	det, err := NewDetector(NewDefaultRegistry(), 0, nil)
	require.NoError(t, err)
	return det
}

func TestDetector_Detect(t *testing.T) {
	det := newTestDetector(t)

	t.Run("identifies each builtin issuer from its letterhead", func(t *testing.T) {
		tests := []struct {
			text string
			want ID
		}{
			{"AMERICAN EXPRESS\nMembership Rewards Summary", AmericanExpress},
			{"CHASE\nCardmember Services\nvisit chase.com", Chase},
			{"Citibank Client Services\nwww.citi.com", Citi},
			{"BANK OF AMERICA\nPO Box 15019", BankOfAmerica},
			{"HSBC Bank plc\nCredit Card Statement", HSBC},
		}
		for _, tt := range tests {
			got := det.Detect(mustDoc(t, tt.text))
			assert.Equal(t, tt.want, got.Issuer, "text: %q", tt.text)
			assert.True(t, got.Identified())
			assert.False(t, got.LowConfidence)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		doc := mustDoc(t, "HSBC Bank plc statement")
		first := det.Detect(doc)
		second := det.Detect(doc)
		assert.Equal(t, first, second)
	})

	t.Run("unrecognizable text yields Unknown", func(t *testing.T) {
		got := det.Detect(mustDoc(t, "lorem ipsum dolor sit amet\nnothing bank-like here"))
		assert.Equal(t, Unknown, got.Issuer)
		assert.False(t, got.Identified())
	})

	t.Run("empty document yields Unknown without error", func(t *testing.T) {
		got := det.Detect(mustDoc(t, ""))
		assert.Equal(t, Unknown, got.Issuer)
	})

	t.Run("a single short generic keyword stays below the threshold", func(t *testing.T) {
		// "amex" alone could be a merchant name in another bank's table.
		got := det.Detect(mustDoc(t, "purchase at AMEX GARAGE LLC 12.00"))
		assert.Equal(t, Unknown, got.Issuer)
	})

	t.Run("near-miss text reports a nearest-profile hint", func(t *testing.T) {
		got := det.Detect(mustDoc(t, "AMERIICAN EXPRESS\nsome statement"))
		assert.Equal(t, Unknown, got.Issuer)
		assert.Equal(t, AmericanExpress, got.NearestHint)
	})
}

func TestDetector_TieBreak(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Profile{
		ID: "alpha", DisplayName: "Alpha",
		Signatures: []Signature{{Pattern: "shared bank header", Weight: 3}},
	}))
	require.NoError(t, reg.Register(&Profile{
		ID: "beta", DisplayName: "Beta",
		Signatures: []Signature{{Pattern: "shared bank header", Weight: 3}},
	}))
	require.NoError(t, reg.Build())

	det, err := NewDetector(reg, 0, nil)
	require.NoError(t, err)

	got := det.Detect(mustDoc(t, "SHARED BANK HEADER\nstatement of account"))

	// First-registered wins, flagged as low confidence.
	assert.Equal(t, ID("alpha"), got.Issuer)
	assert.True(t, got.LowConfidence)
}

func TestNewDetector_RequiresSealedRegistry(t *testing.T) {
	_, err := NewDetector(NewRegistry(), 0, nil)
	assert.ErrorIs(t, err, ErrNotBuilt)
}
