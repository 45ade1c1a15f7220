package issuer

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TOML profile loading. Issuer profiles are the system's only configuration
// surface; operators can ship additional issuers as a TOML file without a
// code change. Builtin profiles always register first, so file-defined
// profiles never change detection for existing issuers.

type tomlSignature struct {
	Pattern string `toml:"pattern"`
	Weight  int    `toml:"weight"`
}

type tomlRule struct {
	Pattern  string `toml:"pattern"`
	Priority int    `toml:"priority"`
	Scope    string `toml:"scope"` // "joined" (default) or "line"
}

type tomlLayout struct {
	HeaderAnchors []string `toml:"header_anchors"`
	FooterAnchors []string `toml:"footer_anchors"`
	RowPattern    string   `toml:"row_pattern"`
	DateFormats   []string `toml:"date_formats"`
}

type tomlProfile struct {
	ID          string                `toml:"id"`
	DisplayName string                `toml:"display_name"`
	Currency    string                `toml:"currency"`
	DateFormats []string              `toml:"date_formats"`
	Signatures  []tomlSignature       `toml:"signatures"`
	Rules       map[string][]tomlRule `toml:"rules"`
	Layout      tomlLayout            `toml:"layout"`
}

type tomlFile struct {
	Profiles []tomlProfile `toml:"profiles"`
}

// LoadProfiles decodes issuer profiles from TOML.
func LoadProfiles(r io.Reader) ([]*Profile, error) {
	var file tomlFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make([]*Profile, 0, len(file.Profiles))
	for _, tp := range file.Profiles {
		p, err := tp.toProfile()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// LoadProfilesFile reads issuer profiles from a TOML file on disk.
func LoadProfilesFile(path string) ([]*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file: %w", err)
	}
	defer f.Close()
	return LoadProfiles(f)
}

func (tp tomlProfile) toProfile() (*Profile, error) {
	if tp.ID == "" {
		return nil, fmt.Errorf("profile missing id")
	}

	p := &Profile{
		ID:          ID(tp.ID),
		DisplayName: tp.DisplayName,
		Currency:    tp.Currency,
		DateFormats: tp.DateFormats,
		Rules:       make(map[Field][]Rule, len(tp.Rules)),
		Layout: TransactionLayout{
			HeaderAnchors: tp.Layout.HeaderAnchors,
			FooterAnchors: tp.Layout.FooterAnchors,
			RowPattern:    tp.Layout.RowPattern,
			DateFormats:   tp.Layout.DateFormats,
		},
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}

	for _, sig := range tp.Signatures {
		p.Signatures = append(p.Signatures, Signature{Pattern: sig.Pattern, Weight: sig.Weight})
	}

	for name, rules := range tp.Rules {
		field := Field(name)
		for _, tr := range rules {
			scope := ScopeJoined
			switch tr.Scope {
			case "", "joined":
			case "line":
				scope = ScopeLine
			default:
				return nil, fmt.Errorf("profile %s, field %s: unknown scope %q", tp.ID, name, tr.Scope)
			}
			p.Rules[field] = append(p.Rules[field], Rule{
				Pattern:  tr.Pattern,
				Priority: tr.Priority,
				Scope:    scope,
			})
		}
	}

	return p, nil
}
