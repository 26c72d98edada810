// Package accessbus decides whether a user may perform an action against a
// resource inside a workspace.
package accessbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
	"github.com/planora/planora/foundation/otel"
)

// ErrNoMembership is returned when the user holds no active membership in
// the workspace.
var ErrNoMembership = errors.New("no active membership in workspace")

// Storer defines the behavior required by the accessbus to load the grant
// material for one member.
type Storer interface {
	QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (MemberGrants, error)
}

// Core manages the set of APIs for access decisions.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for access decision api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// Decide reports whether the subject may perform the action on the resource
// inside the workspace. The rules, in order:
//
//   - A superuser is allowed everything.
//   - Without an active membership the answer is no.
//   - The grant for "resource.action" must exist on the member's role or on
//     an additive override. The widest scope wins.
//   - A grant scoped to all allows the call outright. A grant scoped to own
//     allows it only when the supplied owner matches the subject. When the
//     caller cannot supply an owner the call is denied.
func (c *Core) Decide(ctx context.Context, sub Subject, workspaceID uuid.UUID, res resource.Resource, act actions.Action, ownerID *uuid.UUID) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.accessbus.decide")
	defer span.End()

	if sub.Superuser {
		return true, nil
	}

	mg, err := c.storer.QueryByUserWorkspace(ctx, sub.UserID, workspaceID)
	if err != nil {
		if errors.Is(err, ErrNoMembership) {
			return false, nil
		}
		return false, fmt.Errorf("query: userID[%s] workspaceID[%s]: %w", sub.UserID, workspaceID, err)
	}

	code := permission.NewCode(res, act)

	scope, found := scopeFor(Effective(mg), code)
	if !found {
		return false, nil
	}

	if scope.Equal(permission.All) {
		return true, nil
	}

	if ownerID == nil {
		return false, nil
	}

	return *ownerID == sub.UserID, nil
}

// Grants returns the subject's effective grants in the workspace, role
// grants merged with additive overrides.
func (c *Core) Grants(ctx context.Context, sub Subject, workspaceID uuid.UUID) ([]Grant, error) {
	ctx, span := otel.AddSpan(ctx, "business.accessbus.grants")
	defer span.End()

	mg, err := c.storer.QueryByUserWorkspace(ctx, sub.UserID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: userID[%s] workspaceID[%s]: %w", sub.UserID, workspaceID, err)
	}

	return Effective(mg), nil
}

// Effective merges role grants with the additive overrides. For each code
// the widest scope survives. Overrides carrying allow false are kept in the
// data model for audit but grant and remove nothing.
func Effective(mg MemberGrants) []Grant {
	idx := make(map[string]int)
	out := make([]Grant, 0, len(mg.Grants))

	merge := func(g Grant) {
		i, exists := idx[g.Code.String()]
		if !exists {
			idx[g.Code.String()] = len(out)
			out = append(out, g)
			return
		}
		if g.Scope.Equal(permission.All) {
			out[i].Scope = permission.All
		}
	}

	for _, g := range mg.Grants {
		merge(g)
	}

	for _, ovr := range mg.Overrides {
		if !ovr.Allow {
			continue
		}
		merge(Grant{Code: ovr.Code, Scope: ovr.Scope})
	}

	return out
}

func scopeFor(grants []Grant, code permission.Code) (permission.Scope, bool) {
	for _, g := range grants {
		if g.Code.Equal(code) {
			return g.Scope, true
		}
	}

	return permission.Scope{}, false
}
