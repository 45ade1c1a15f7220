package extract

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
)

// Engine runs a profile's rule sets against a document. It holds no
// per-document state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a field-extraction engine. A nil logger uses the default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// ExtractFields applies the profile's ordered rule set for every field it
// defines and returns one result per field, required fields first in fixed
// order. Fields are independent: one field failing never stops the others.
func (e *Engine) ExtractFields(doc *document.RawDocument, profile *issuer.Profile) []FieldResult {
	fields := profile.Fields()
	results := make([]FieldResult, len(fields))
	for i, field := range fields {
		results[i] = e.extractField(doc, profile, field)
	}
	return results
}

// extractField walks the field's rules in descending priority. The first
// priority tier with a match decides the field: one distinct captured value
// wins, two or more make it ambiguous. Lower tiers are never consulted after
// a tier matches.
func (e *Engine) extractField(doc *document.RawDocument, profile *issuer.Profile, field issuer.Field) FieldResult {
	rules := profile.Rules[field]
	if len(rules) == 0 {
		return FieldResult{Field: field, Outcome: OutcomeNotFound}
	}

	for _, tier := range priorityTiers(rules) {
		var captures []string
		for _, rule := range tier {
			if raw, ok := matchRule(doc, rule); ok {
				captures = append(captures, raw)
			}
		}

		distinct := distinctStrings(captures)
		switch len(distinct) {
		case 0:
			continue
		case 1:
			return e.normalizeCapture(profile, field, distinct[0])
		default:
			e.logger.Debug("conflicting field candidates",
				"issuer", profile.ID, "field", field, "candidates", distinct)
			return FieldResult{Field: field, Outcome: OutcomeAmbiguous, Candidates: distinct}
		}
	}

	return FieldResult{Field: field, Outcome: OutcomeNotFound}
}

// normalizeCapture converts the winning raw capture into the field's
// canonical value, reporting malformed captures distinctly from non-matches.
func (e *Engine) normalizeCapture(profile *issuer.Profile, field issuer.Field, raw string) FieldResult {
	value, err := NormalizeValue(profile, field, raw)
	if err != nil {
		e.logger.Debug("field conversion failed",
			"issuer", profile.ID, "field", field, "raw", raw, "err", err)
		return FieldResult{
			Field:   field,
			Outcome: OutcomeConversionFailed,
			Raw:     raw,
			Detail:  err.Error(),
		}
	}
	return FieldResult{Field: field, Outcome: OutcomeFound, Raw: raw, Value: value}
}

// matchRule runs one rule against the document and returns its capture.
// Group 1 is preferred when the pattern defines groups, otherwise the whole
// match, mirroring how the rules are written.
func matchRule(doc *document.RawDocument, rule issuer.Rule) (string, bool) {
	re := rule.Regexp()
	if re == nil {
		return "", false
	}

	switch rule.Scope {
	case issuer.ScopeLine:
		for _, line := range doc.Lines {
			if m := re.FindStringSubmatch(line.Text); m != nil {
				return captureOf(re, m), true
			}
		}
		return "", false
	default:
		if m := re.FindStringSubmatch(doc.Joined); m != nil {
			return captureOf(re, m), true
		}
		return "", false
	}
}

func captureOf(re *regexp.Regexp, m []string) string {
	if re.NumSubexp() > 0 && m[1] != "" {
		return document.CollapseSpaces(m[1])
	}
	return document.CollapseSpaces(m[0])
}

// priorityTiers groups rules by priority, highest tier first. Order within a
// tier follows the profile's rule order.
func priorityTiers(rules []issuer.Rule) [][]issuer.Rule {
	byPriority := make(map[int][]issuer.Rule)
	priorities := make([]int, 0, len(rules))
	for _, r := range rules {
		if _, seen := byPriority[r.Priority]; !seen {
			priorities = append(priorities, r.Priority)
		}
		byPriority[r.Priority] = append(byPriority[r.Priority], r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(priorities)))

	tiers := make([][]issuer.Rule, len(priorities))
	for i, p := range priorities {
		tiers[i] = byPriority[p]
	}
	return tiers
}

func distinctStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
