package issuer

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	ErrRegistrySealed  = errors.New("registry is sealed; profiles cannot be added after Build")
	ErrDuplicateIssuer = errors.New("issuer already registered")
	ErrNotBuilt        = errors.New("registry has not been built")
)

// Registry maps issuer identifiers to their profiles. Registration order is
// preserved and used for deterministic tie-breaking during detection.
// Register is append-only; after Build the registry is immutable and safe for
// concurrent readers without locking.
type Registry struct {
	profiles []*Profile
	byID     map[ID]*Profile
	sealed   bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[ID]*Profile)}
}

// NewDefaultRegistry returns a built registry with the builtin profiles.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, p := range BuiltinProfiles() {
		if err := reg.Register(p); err != nil {
			panic(err) // builtin profiles are static and must register
		}
	}
	if err := reg.Build(); err != nil {
		panic(err)
	}
	return reg
}

// Register appends a profile. It fails after Build or on a duplicate ID.
func (r *Registry) Register(p *Profile) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if p.ID == "" || p.ID == Unknown {
		return fmt.Errorf("invalid profile id %q", p.ID)
	}
	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIssuer, p.ID)
	}
	r.profiles = append(r.profiles, p)
	r.byID[p.ID] = p
	return nil
}

// Build compiles all registered profiles and seals the registry.
func (r *Registry) Build() error {
	for _, p := range r.profiles {
		if err := p.compile(); err != nil {
			return err
		}
	}
	r.sealed = true
	return nil
}

// Get returns the profile for an issuer, or nil if it is not registered.
func (r *Registry) Get(id ID) *Profile {
	return r.byID[id]
}

// Profiles returns all profiles in registration order.
func (r *Registry) Profiles() []*Profile {
	return r.profiles
}

// Sealed reports whether Build has been called.
func (r *Registry) Sealed() bool {
	return r.sealed
}
