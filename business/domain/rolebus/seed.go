package rolebus

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/name"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/otel"
)

// Names of the seeded system roles.
const (
	RoleOwner  = "Owner"
	RoleEditor = "Editor"
	RoleMember = "Member"
)

// defaultRole describes one seeded role and the grants it starts with.
type defaultRole struct {
	name  string
	perms []Permission
}

func defaultRoles() []defaultRole {
	all := permission.All

	ownerPerms := make([]Permission, 0, 10)
	for _, res := range []resource.Resource{
		resource.WorkspaceUsers,
		resource.Roles,
		resource.Subscription,
		resource.Invites,
		resource.Organization,
	} {
		ownerPerms = append(ownerPerms,
			Permission{Code: permission.NewCode(res, actions.View), Scope: all},
			Permission{Code: permission.NewCode(res, actions.Change), Scope: all},
		)
	}

	return []defaultRole{
		{
			name:  RoleOwner,
			perms: ownerPerms,
		},
		{
			name: RoleEditor,
			perms: []Permission{
				{Code: permission.NewCode(resource.Invites, actions.View), Scope: all},
				{Code: permission.NewCode(resource.Invites, actions.Change), Scope: all},
				{Code: permission.NewCode(resource.Organization, actions.View), Scope: all},
				{Code: permission.NewCode(resource.Organization, actions.Change), Scope: all},
			},
		},
		{
			name: RoleMember,
			perms: []Permission{
				{Code: permission.NewCode(resource.Invites, actions.View), Scope: all},
				{Code: permission.NewCode(resource.Organization, actions.View), Scope: all},
			},
		},
	}
}

// Seed installs the default roles into the workspace. Provisioning calls it
// exactly once per workspace; a second run trips the role name uniqueness
// constraint and returns ErrUniqueName. Grants whose code is not in the
// registry are dropped without complaint, which lets the defaults reference
// codes a deployment has turned off.
func (c *Core) Seed(ctx context.Context, reg *permission.Registry, workspaceID uuid.UUID) (map[string]Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.seed")
	defer span.End()

	byName := make(map[string]Role, 3)

	for _, def := range defaultRoles() {
		nr := NewRole{
			WorkspaceID: workspaceID,
			Name:        name.MustParse(def.name),
			System:      true,
			Permissions: filterKnown(reg, def.perms),
		}

		rl, err := c.Create(ctx, nr)
		if err != nil {
			return nil, fmt.Errorf("create role %q: %w", def.name, err)
		}

		byName[def.name] = rl
	}

	return byName, nil
}
