package oauth

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var scopeNameRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9_.-]{0,126}[a-z0-9])?$`)

// ValidScopeName reports whether name is a well-formed HubSpot scope.
func ValidScopeName(name string) bool {
	return scopeNameRe.MatchString(name)
}

// ScopeSet is an unordered set of OAuth scopes.
type ScopeSet struct {
	items map[string]struct{}
}

// NewScopeSet builds a set from scopes. Blank entries are skipped;
// duplicates collapse. Returns ErrInvalidScope for a malformed name.
func NewScopeSet(scopes ...string) (ScopeSet, error) {
	s := ScopeSet{items: make(map[string]struct{}, len(scopes))}
	for _, sc := range scopes {
		if err := s.Add(sc); err != nil {
			return ScopeSet{}, err
		}
	}
	return s, nil
}

// MustScopeSet is like NewScopeSet but panics on an invalid scope.
func MustScopeSet(scopes ...string) ScopeSet {
	s, err := NewScopeSet(scopes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add inserts scope into the set.
func (s *ScopeSet) Add(scope string) error {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil
	}
	if !ValidScopeName(scope) {
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	s.items[scope] = struct{}{}
	return nil
}

// Has reports whether scope is in the set.
func (s ScopeSet) Has(scope string) bool {
	_, ok := s.items[scope]
	return ok
}

// Len returns the number of scopes.
func (s ScopeSet) Len() int { return len(s.items) }

// Slice returns the scopes in sorted order.
func (s ScopeSet) Slice() []string {
	out := make([]string, 0, len(s.items))
	for sc := range s.items {
		out = append(out, sc)
	}
	slices.Sort(out)
	return out
}

// String returns the sorted scopes joined by a single space.
func (s ScopeSet) String() string {
	return strings.Join(s.Slice(), " ")
}

// DefaultScopes is the scope list granted by the original app install.
func DefaultScopes() []string {
	return []string{
		"oauth",
		"crm.schemas.contacts.write",
		"crm.objects.owners.read",
		"crm.objects.companies.read",
		"crm.objects.contacts.read",
		"crm.objects.contacts.write",
		"crm.lists.write",
		"crm.lists.read",
		"crm.objects.deals.read",
		"crm.objects.leads.read",
		"crm.objects.custom.read",
		"crm.schemas.custom.read",
	}
}

// DefaultOptionalScopes are requested as optional so portals without
// the marketing or transactional email add-ons can still install.
func DefaultOptionalScopes() []string {
	return []string{"marketing-email", "transactional-email"}
}

// ScopesFile is the YAML layout read by LoadScopes.
type ScopesFile struct {
	Scopes         []string `yaml:"scopes"`
	OptionalScopes []string `yaml:"optional_scopes"`
}

// LoadScopes reads required and optional scopes from a YAML file.
func LoadScopes(path string) (required, optional ScopeSet, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ScopeSet{}, ScopeSet{}, fmt.Errorf("%w: %v", ErrScopesFile, err)
	}

	var f ScopesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return ScopeSet{}, ScopeSet{}, fmt.Errorf("%w: %s: %v", ErrScopesFile, path, err)
	}

	if required, err = NewScopeSet(f.Scopes...); err != nil {
		return ScopeSet{}, ScopeSet{}, err
	}
	if optional, err = NewScopeSet(f.OptionalScopes...); err != nil {
		return ScopeSet{}, ScopeSet{}, err
	}
	return required, optional, nil
}

// ResolveScopes picks the scope sets for cfg: explicit lists first, then the
// scopes file, then the defaults.
func ResolveScopes(cfg Config) (required, optional ScopeSet, err error) {
	if len(cfg.Scopes) == 0 && len(cfg.OptionalScopes) == 0 && cfg.ScopesFile != "" {
		return LoadScopes(cfg.ScopesFile)
	}

	req := cfg.Scopes
	if len(req) == 0 {
		req = DefaultScopes()
	}
	opt := cfg.OptionalScopes
	if len(opt) == 0 && len(cfg.Scopes) == 0 {
		opt = DefaultOptionalScopes()
	}

	if required, err = NewScopeSet(req...); err != nil {
		return ScopeSet{}, ScopeSet{}, err
	}
	if optional, err = NewScopeSet(opt...); err != nil {
		return ScopeSet{}, ScopeSet{}, err
	}
	return required, optional, nil
}
