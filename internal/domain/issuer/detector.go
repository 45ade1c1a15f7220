package issuer

import (
	"log/slog"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/statement-extractor/internal/domain/document"
)

// DefaultMinScore is the minimum signature score required to identify an
// issuer. Below it, detection reports Unknown rather than guessing.
const DefaultMinScore = 2

// Detection is the outcome of issuer detection. Detection never fails:
// malformed or empty text simply scores zero everywhere.
type Detection struct {
	Issuer        ID     `json:"issuer"`
	DisplayName   string `json:"display_name,omitempty"`
	Score         int    `json:"score"`
	LowConfidence bool   `json:"low_confidence,omitempty"`
	// NearestHint names the closest-looking profile when detection failed,
	// found by fuzzy-matching signatures against the document. Diagnostic
	// only; it never selects a profile.
	NearestHint ID `json:"nearest_hint,omitempty"`
}

// Identified reports whether a concrete issuer was selected.
func (d Detection) Identified() bool {
	return d.Issuer != Unknown
}

// sigRef ties one matcher dictionary entry back to its owning profile.
type sigRef struct {
	profile *Profile
	weight  int
}

// Detector scores documents against every registered profile's signatures in
// a single Aho-Corasick pass. It is built once from a sealed registry and is
// safe for concurrent use.
type Detector struct {
	registry *Registry
	matcher  *ahocorasick.Matcher
	owners   [][]sigRef // parallel to the matcher dictionary
	minScore int
	logger   *slog.Logger
}

// NewDetector builds a detector over a sealed registry. minScore <= 0 selects
// DefaultMinScore.
func NewDetector(registry *Registry, minScore int, logger *slog.Logger) (*Detector, error) {
	if !registry.Sealed() {
		return nil, ErrNotBuilt
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Deduplicate signature literals across profiles; a shared literal
	// credits every profile that declares it.
	index := make(map[string]int)
	var dictionary []string
	var owners [][]sigRef

	for _, p := range registry.Profiles() {
		for _, sig := range p.Signatures {
			pattern := strings.ToLower(sig.Pattern)
			if pattern == "" {
				continue
			}
			i, ok := index[pattern]
			if !ok {
				i = len(dictionary)
				index[pattern] = i
				dictionary = append(dictionary, pattern)
				owners = append(owners, nil)
			}
			owners[i] = append(owners[i], sigRef{profile: p, weight: sig.effectiveWeight()})
		}
	}

	return &Detector{
		registry: registry,
		matcher:  ahocorasick.NewStringMatcher(dictionary),
		owners:   owners,
		minScore: minScore,
		logger:   logger,
	}, nil
}

// Detect scores the document against all profiles and selects the strictly
// best one. Ties are broken by registration order and flagged low confidence.
// A score below the minimum yields Unknown.
func (d *Detector) Detect(doc *document.RawDocument) Detection {
	if doc.Empty() {
		return Detection{Issuer: Unknown}
	}

	scores := make(map[ID]int)
	for _, hit := range d.matcher.Match([]byte(strings.ToLower(doc.Joined))) {
		for _, ref := range d.owners[hit] {
			scores[ref.profile.ID] += ref.weight
		}
	}

	var best *Profile
	bestScore := 0
	tied := false
	for _, p := range d.registry.Profiles() {
		score := scores[p.ID]
		if score > bestScore {
			best, bestScore, tied = p, score, false
		} else if score == bestScore && score > 0 && best != nil {
			tied = true
		}
	}

	if best == nil || bestScore < d.minScore {
		det := Detection{Issuer: Unknown, NearestHint: d.nearestProfile(doc)}
		d.logger.Debug("no issuer signature matched", "best_score", bestScore, "hint", det.NearestHint)
		return det
	}

	det := Detection{
		Issuer:        best.ID,
		DisplayName:   best.DisplayName,
		Score:         bestScore,
		LowConfidence: tied,
	}
	d.logger.Debug("issuer detected", "issuer", det.Issuer, "score", det.Score, "low_confidence", det.LowConfidence)
	return det
}

// nearestProfile fuzzy-matches each profile's signatures against the
// document lines and returns the closest profile within a distance bound.
func (d *Detector) nearestProfile(doc *document.RawDocument) ID {
	nearest := Unknown
	bestDistance := -1

	for _, p := range d.registry.Profiles() {
		for _, sig := range p.Signatures {
			limit := len(sig.Pattern) / 3
			if limit == 0 {
				continue
			}
			for _, line := range doc.Lines {
				dist := fuzzy.RankMatchNormalizedFold(sig.Pattern, line.Text)
				if dist < 0 || dist > limit {
					continue
				}
				if bestDistance < 0 || dist < bestDistance {
					nearest, bestDistance = p.ID, dist
				}
			}
		}
	}
	return nearest
}
