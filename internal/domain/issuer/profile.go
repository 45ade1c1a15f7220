// Package issuer holds the declarative per-issuer configuration: signature
// patterns for detection and ordered field-extraction rules. Adding support
// for a new card issuer means registering one more Profile; no other
// component changes.
package issuer

import (
	"fmt"
	"regexp"
)

// ID identifies a card issuer.
type ID string

// Known issuer identifiers.
const (
	AmericanExpress ID = "amex"
	Chase           ID = "chase"
	Citi            ID = "citi"
	BankOfAmerica   ID = "bofa"
	HSBC            ID = "hsbc"
	Unknown         ID = "unknown"
)

// Field names a single extractable statement field.
type Field string

// Statement fields. The first five are required; card variant is a bonus
// field that never affects the overall statement status.
const (
	FieldCardholderName Field = "cardholder_name"
	FieldCardLast4      Field = "card_last4"
	FieldBillingPeriod  Field = "billing_period"
	FieldDueDate        Field = "due_date"
	FieldAmountDue      Field = "amount_due"
	FieldCardVariant    Field = "card_variant"
)

// RequiredFields returns the five required fields in their fixed result order.
func RequiredFields() []Field {
	return []Field{
		FieldCardholderName,
		FieldCardLast4,
		FieldBillingPeriod,
		FieldDueDate,
		FieldAmountDue,
	}
}

// ValueKind describes the canonical type a field normalizes to.
type ValueKind int

const (
	KindText ValueKind = iota
	KindLast4
	KindDate
	KindPeriod
	KindAmount
)

// Kind returns the canonical value kind for a field.
func (f Field) Kind() ValueKind {
	switch f {
	case FieldCardLast4:
		return KindLast4
	case FieldBillingPeriod:
		return KindPeriod
	case FieldDueDate:
		return KindDate
	case FieldAmountDue:
		return KindAmount
	default:
		return KindText
	}
}

// RuleScope selects what text a rule's pattern runs against.
type RuleScope int

const (
	// ScopeJoined matches against the whole-document joined view.
	ScopeJoined RuleScope = iota
	// ScopeLine matches line by line; the first matching line wins.
	ScopeLine
)

// Rule is one extraction attempt for a field. Rules for a field are tried in
// descending Priority; within the same priority they are alternative
// candidates, and conflicting matches make the field ambiguous.
type Rule struct {
	Pattern  string
	Priority int
	Scope    RuleScope

	re *regexp.Regexp
}

// Regexp returns the compiled pattern. It is non-nil after Registry.Build.
func (r *Rule) Regexp() *regexp.Regexp { return r.re }

// Signature is a text fragment reliably present in one issuer's statements.
// Weight defaults to a length-derived specificity score: a long literal
// header string outweighs a short generic keyword.
type Signature struct {
	Pattern string
	Weight  int
}

// effectiveWeight derives a specificity weight when none is configured.
func (s Signature) effectiveWeight() int {
	if s.Weight > 0 {
		return s.Weight
	}
	return 1 + len(s.Pattern)/8
}

// TransactionLayout describes how an issuer prints its transaction table.
type TransactionLayout struct {
	HeaderAnchors []string // section start markers, matched case-insensitively
	FooterAnchors []string // section end markers
	RowPattern    string   // must capture (date, merchant, amount)
	DateFormats   []string // row date formats, tried in order

	rowRe *regexp.Regexp
}

// RowRegexp returns the compiled row pattern, non-nil after Registry.Build.
func (l *TransactionLayout) RowRegexp() *regexp.Regexp { return l.rowRe }

// Profile is one issuer's complete declarative configuration. Profiles are
// registered once at startup and are immutable after Registry.Build, so they
// are shared read-only across concurrent extractions.
type Profile struct {
	ID          ID
	DisplayName string
	Signatures  []Signature
	Rules       map[Field][]Rule
	DateFormats []string // field date formats, tried in order
	Currency    string   // ISO-4217 code for amount normalization
	Layout      TransactionLayout
}

// Fields returns the fields this profile defines rules for, required fields
// first in fixed order, then any bonus fields the profile knows about.
func (p *Profile) Fields() []Field {
	fields := RequiredFields()
	if _, ok := p.Rules[FieldCardVariant]; ok {
		fields = append(fields, FieldCardVariant)
	}
	return fields
}

// compile compiles every rule and layout pattern, failing fast on bad config.
func (p *Profile) compile() error {
	for field, rules := range p.Rules {
		for i := range rules {
			re, err := regexp.Compile(rules[i].Pattern)
			if err != nil {
				return fmt.Errorf("profile %s, field %s, rule %d: %w", p.ID, field, i, err)
			}
			rules[i].re = re
		}
	}
	if p.Layout.RowPattern != "" {
		re, err := regexp.Compile(p.Layout.RowPattern)
		if err != nil {
			return fmt.Errorf("profile %s, transaction row pattern: %w", p.ID, err)
		}
		p.Layout.rowRe = re
	}
	return nil
}
