package permission

import (
	"sort"

	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
)

// Definition describes a permission code the platform recognises and the
// scopes a grant for it may carry.
type Definition struct {
	Code        Code
	Description string
	Scopes      []Scope
}

// Source provides a set of permission definitions. Product areas register
// their codes through a source so the registry stays the single list of
// what can be granted.
type Source interface {
	Definitions() []Definition
}

// Registry holds the merged permission vocabulary.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry constructs a registry by merging the given sources. The merge
// is a union. When two sources define the same code the later one wins.
func NewRegistry(sources ...Source) *Registry {
	defs := make(map[string]Definition)

	for _, src := range sources {
		for _, def := range src.Definitions() {
			defs[def.Code.String()] = def
		}
	}

	return &Registry{defs: defs}
}

// Known reports whether the code is part of the vocabulary.
func (r *Registry) Known(code Code) bool {
	_, exists := r.defs[code.String()]
	return exists
}

// Lookup returns the definition for the code if one exists.
func (r *Registry) Lookup(code Code) (Definition, bool) {
	def, exists := r.defs[code.String()]
	return def, exists
}

// Scopes returns the allowed scope set for the code, or false when the code
// is not part of the vocabulary.
func (r *Registry) Scopes(code Code) ([]Scope, bool) {
	def, exists := r.defs[code.String()]
	if !exists {
		return nil, false
	}
	return def.Scopes, true
}

// Allows reports whether a grant for the code may carry the scope.
func (r *Registry) Allows(code Code, scope Scope) bool {
	def, exists := r.defs[code.String()]
	if !exists {
		return false
	}

	for _, s := range def.Scopes {
		if s.Equal(scope) {
			return true
		}
	}

	return false
}

// Definitions returns every definition ordered by code.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Code.String() < defs[j].Code.String()
	})

	return defs
}

// =============================================================================

// Core is the built-in source covering workspace administration.
var Core Source = coreSource{}

type coreSource struct{}

func (coreSource) Definitions() []Definition {
	grid := []struct {
		res  resource.Resource
		desc string
	}{
		{resource.WorkspaceUsers, "workspace members"},
		{resource.Roles, "workspace roles"},
		{resource.Subscription, "workspace subscription"},
		{resource.Invites, "workspace invites"},
		{resource.Organization, "workspace organization"},
	}

	scopes := []Scope{Own, All}

	defs := make([]Definition, 0, len(grid)*2)
	for _, g := range grid {
		defs = append(defs,
			Definition{Code: NewCode(g.res, actions.View), Description: "view " + g.desc, Scopes: scopes},
			Definition{Code: NewCode(g.res, actions.Change), Description: "manage " + g.desc, Scopes: scopes},
		)
	}

	return defs
}
