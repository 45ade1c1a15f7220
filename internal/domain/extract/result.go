// Package extract applies an issuer profile's ordered rule sets to a
// normalized document, producing one tagged result per field. It never
// fabricates a value: a field is Found, NotFound, Ambiguous, or matched but
// malformed, and those outcomes are data, not errors.
package extract

import (
	"time"

	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

// Outcome is the per-field extraction outcome.
type Outcome int

const (
	// OutcomeNotFound means the rule set was exhausted without a match.
	OutcomeNotFound Outcome = iota
	// OutcomeFound means a rule matched and the value normalized cleanly.
	OutcomeFound
	// OutcomeAmbiguous means alternative same-priority rules matched
	// conflicting values; no candidate was silently picked.
	OutcomeAmbiguous
	// OutcomeConversionFailed means a rule matched but the captured text
	// did not normalize to the field's canonical type.
	OutcomeConversionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeAmbiguous:
		return "ambiguous"
	case OutcomeConversionFailed:
		return "conversion_failed"
	default:
		return "not_found"
	}
}

// MarshalText serializes the outcome as its name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Value is the canonical typed value of a Found field. Exactly the members
// matching the field's kind are populated.
type Value struct {
	Kind        issuer.ValueKind `json:"-"`
	Text        string           `json:"text,omitempty"`
	Date        time.Time        `json:"date,omitzero"`
	PeriodStart time.Time        `json:"period_start,omitzero"`
	PeriodEnd   time.Time        `json:"period_end,omitzero"`
	Amount      *money.Money     `json:"amount,omitempty"`
}

// FieldResult is the outcome of extracting one field. Value is non-nil only
// when Outcome is OutcomeFound.
type FieldResult struct {
	Field      issuer.Field `json:"field"`
	Outcome    Outcome      `json:"outcome"`
	Raw        string       `json:"raw,omitempty"`        // matched text, for diagnostics
	Value      *Value       `json:"value,omitempty"`      // canonical value when Found
	Candidates []string     `json:"candidates,omitempty"` // conflicting raws when Ambiguous
	Detail     string       `json:"detail,omitempty"`     // conversion failure description
}

// Found reports whether the field extracted and normalized successfully.
func (r FieldResult) Found() bool {
	return r.Outcome == OutcomeFound
}

// NotFoundResults returns one NotFound result per required field, in fixed
// field order. Used when no issuer profile matched and extraction is skipped.
func NotFoundResults() []FieldResult {
	fields := issuer.RequiredFields()
	out := make([]FieldResult, len(fields))
	for i, f := range fields {
		out[i] = FieldResult{Field: f, Outcome: OutcomeNotFound}
	}
	return out
}
