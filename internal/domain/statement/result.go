// Package statement assembles detection, field extraction, and transaction
// parsing into one StatementResult per input document.
package statement

import (
	"github.com/FACorreiaa/statement-extractor/internal/domain/extract"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
	"github.com/FACorreiaa/statement-extractor/internal/domain/transaction"
)

// Status is the overall outcome of processing one statement. It is derived
// from the field results and never set independently.
type Status int

const (
	// StatusUnidentified means no issuer profile matched.
	StatusUnidentified Status = iota
	// StatusPartial means the issuer was identified but at least one
	// required field did not extract cleanly.
	StatusPartial
	// StatusComplete means all five required fields were found.
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusPartial:
		return "partial"
	default:
		return "unidentified"
	}
}

// MarshalText serializes the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatementResult is the structured output for one input document. Fields
// always holds exactly one entry per required field in fixed order (plus any
// bonus fields the profile defines, after them).
type StatementResult struct {
	DocumentID   string                `json:"document_id"`
	Issuer       issuer.ID             `json:"issuer"`
	IssuerName   string                `json:"issuer_name,omitempty"`
	Detection    issuer.Detection      `json:"detection"`
	Fields       []extract.FieldResult `json:"fields"`
	Transactions []transaction.Record  `json:"transactions"`
	Status       Status                `json:"status"`
	// Snippet is a bounded sample of the normalized text for diagnostics.
	Snippet string `json:"snippet,omitempty"`
}

// Field returns the result for one field, or a NotFound placeholder if the
// profile does not define it.
func (r *StatementResult) Field(f issuer.Field) extract.FieldResult {
	for _, fr := range r.Fields {
		if fr.Field == f {
			return fr
		}
	}
	return extract.FieldResult{Field: f, Outcome: extract.OutcomeNotFound}
}

// deriveStatus computes the overall status from detection and the required
// field outcomes only; bonus fields and transactions never affect it.
func deriveStatus(det issuer.Detection, fields []extract.FieldResult) Status {
	if !det.Identified() {
		return StatusUnidentified
	}

	required := make(map[issuer.Field]bool, 5)
	for _, f := range issuer.RequiredFields() {
		required[f] = true
	}
	for _, fr := range fields {
		if required[fr.Field] && !fr.Found() {
			return StatusPartial
		}
	}
	return StatusComplete
}
