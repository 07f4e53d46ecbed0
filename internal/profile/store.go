package profile

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Store holds every configured profile keyed by profile name.
type Store struct {
	// DefaultProfile optionally names the profile used when nothing else
	// applies. It must reference an existing key.
	DefaultProfile string `toml:"default_profile,omitempty" json:"default_profile,omitempty" yaml:"default_profile,omitempty"`

	// Profiles maps profile name to profile.
	Profiles map[string]Profile `toml:"profiles" json:"profiles" yaml:"profiles"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Profiles: make(map[string]Profile)}
}

// ValidateProfileName checks that name can key a profile. Names become the
// suffix of SSH Host aliases, so whitespace and '#' are rejected.
func ValidateProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidProfileName)
	}
	if strings.ContainsFunc(name, func(r rune) bool { return unicode.IsSpace(r) || r == '#' }) {
		return fmt.Errorf("%w: %q must not contain whitespace or '#'", ErrInvalidProfileName, name)
	}
	return nil
}

// Add inserts a new profile. The store is unchanged on error.
func (s *Store) Add(name string, p Profile) error {
	if err := ValidateProfileName(name); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if s.Has(name) {
		return fmt.Errorf("%w: %s", ErrProfileExists, name)
	}
	if s.Profiles == nil {
		s.Profiles = make(map[string]Profile)
	}
	s.Profiles[name] = p
	return nil
}

// Replace overwrites an existing profile wholesale.
func (s *Store) Replace(name string, p Profile) error {
	if !s.Has(name) {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.Profiles[name] = p
	return nil
}

// Remove deletes a profile, clearing DefaultProfile if it named it.
func (s *Store) Remove(name string) (Profile, error) {
	p, ok := s.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	if s.DefaultProfile == name {
		s.DefaultProfile = ""
	}
	delete(s.Profiles, name)
	return p, nil
}

// Get returns the named profile.
func (s *Store) Get(name string) (Profile, error) {
	p, ok := s.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return p, nil
}

// Has reports whether a profile with that name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.Profiles[name]
	return ok
}

// Len returns the number of profiles.
func (s *Store) Len() int {
	return len(s.Profiles)
}

// Names returns all profile names sorted ascending.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDefault sets the default profile. An empty name clears it.
func (s *Store) SetDefault(name string) error {
	if name != "" && !s.Has(name) {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	s.DefaultProfile = name
	return nil
}

// Validate checks every profile and the default reference.
func (s *Store) Validate() error {
	for _, name := range s.Names() {
		if err := ValidateProfileName(name); err != nil {
			return err
		}
		if err := s.Profiles[name].Validate(); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
	}
	if s.DefaultProfile != "" && !s.Has(s.DefaultProfile) {
		return fmt.Errorf("%w: %s", ErrDanglingDefault, s.DefaultProfile)
	}
	return nil
}
