package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

// defaultDateFormats are tried after a profile's own formats.
var defaultDateFormats = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
}

// periodSeparators split a billing period into its start and end dates,
// tried in order. A bare hyphen is handled separately since it can also
// appear inside dates.
var periodSeparators = []string{" - ", " to ", " through "}

var last4Pattern = regexp.MustCompile(`^\d{4}$`)

// NormalizeValue converts a raw captured substring into the field's canonical
// typed value. Failure here means the pattern matched garbage; callers report
// it distinctly from a pattern that never matched.
func NormalizeValue(profile *issuer.Profile, field issuer.Field, raw string) (*Value, error) {
	kind := field.Kind()
	switch kind {
	case issuer.KindLast4:
		return normalizeLast4(raw)
	case issuer.KindDate:
		t, err := parseDate(raw, profile.DateFormats)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: kind, Date: t}, nil
	case issuer.KindPeriod:
		return normalizePeriod(raw, profile.DateFormats)
	case issuer.KindAmount:
		return normalizeAmount(raw, profile.Currency)
	default:
		text := document.CollapseSpaces(raw)
		if text == "" {
			return nil, fmt.Errorf("empty text capture")
		}
		return &Value{Kind: kind, Text: text}, nil
	}
}

// normalizeLast4 accepts exactly four digits. Anything else is malformed;
// it is never truncated or padded.
func normalizeLast4(raw string) (*Value, error) {
	s := strings.TrimSpace(raw)
	if !last4Pattern.MatchString(s) {
		return nil, fmt.Errorf("card last-4 must be exactly 4 digits, got %q", s)
	}
	return &Value{Kind: issuer.KindLast4, Text: s}, nil
}

func normalizePeriod(raw string, formats []string) (*Value, error) {
	start, end, ok := splitPeriod(raw)
	if !ok {
		return nil, fmt.Errorf("unrecognized period %q", raw)
	}

	startDate, err := parseDate(start, formats)
	if err != nil {
		return nil, fmt.Errorf("period start: %w", err)
	}
	endDate, err := parseDate(end, formats)
	if err != nil {
		return nil, fmt.Errorf("period end: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("period ends %s before it starts %s",
			endDate.Format(time.DateOnly), startDate.Format(time.DateOnly))
	}

	return &Value{Kind: issuer.KindPeriod, PeriodStart: startDate, PeriodEnd: endDate}, nil
}

func splitPeriod(raw string) (start, end string, ok bool) {
	s := document.CollapseSpaces(raw)
	// En dashes never appear inside a date, so they separate regardless of
	// surrounding spacing.
	s = document.CollapseSpaces(strings.ReplaceAll(s, "–", " - "))
	for _, sep := range periodSeparators {
		if parts := strings.SplitN(s, sep, 2); len(parts) == 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
		}
	}
	// Compact form like "07/15/2024-08/14/2024".
	if strings.Count(s, "-") == 1 {
		parts := strings.SplitN(s, "-", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
	}
	return "", "", false
}

func normalizeAmount(raw string, currency string) (*Value, error) {
	if currency == "" {
		currency = money.USD
	}
	amount, err := money.Parse(raw, currency)
	if err != nil {
		return nil, err
	}
	return &Value{Kind: issuer.KindAmount, Amount: amount}, nil
}

// parseDate tries the profile's formats first, then the common defaults.
// The first format that parses cleanly wins.
func parseDate(raw string, formats []string) (time.Time, error) {
	s := document.CollapseSpaces(raw)
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	for _, format := range defaultDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}

// ParseDate is the exported variant used by the transaction parser.
func ParseDate(raw string, formats []string) (time.Time, error) {
	return parseDate(raw, formats)
}
