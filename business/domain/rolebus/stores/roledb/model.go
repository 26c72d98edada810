package roledb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/types/name"
	"github.com/planora/planora/business/types/permission"
)

type roleDB struct {
	ID          uuid.UUID `db:"role_id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
	System      bool      `db:"system"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type rolePermissionDB struct {
	RoleID uuid.UUID `db:"role_id"`
	Code   string    `db:"code"`
	Scope  string    `db:"scope"`
}

func toDBRole(bus rolebus.Role) roleDB {
	return roleDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Name:        bus.Name.String(),
		System:      bus.System,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}
}

func toDBRolePermissions(bus rolebus.Role) []rolePermissionDB {
	perms := make([]rolePermissionDB, len(bus.Permissions))
	for i, p := range bus.Permissions {
		perms[i] = rolePermissionDB{
			RoleID: bus.ID,
			Code:   p.Code.String(),
			Scope:  p.Scope.String(),
		}
	}

	return perms
}

func toBusPermission(db rolePermissionDB) (rolebus.Permission, error) {
	code, err := permission.ParseCode(db.Code)
	if err != nil {
		return rolebus.Permission{}, fmt.Errorf("parse code: %w", err)
	}

	scope, err := permission.ParseScope(db.Scope)
	if err != nil {
		return rolebus.Permission{}, fmt.Errorf("parse scope: %w", err)
	}

	return rolebus.Permission{Code: code, Scope: scope}, nil
}

func toBusRole(db roleDB, dbPerms []rolePermissionDB) (rolebus.Role, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return rolebus.Role{}, fmt.Errorf("parse name: %w", err)
	}

	perms := make([]rolebus.Permission, 0, len(dbPerms))
	for _, dbPerm := range dbPerms {
		if dbPerm.RoleID != db.ID {
			continue
		}
		perm, err := toBusPermission(dbPerm)
		if err != nil {
			return rolebus.Role{}, err
		}
		perms = append(perms, perm)
	}

	bus := rolebus.Role{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Name:        nme,
		System:      db.System,
		Permissions: perms,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusRoles(dbs []roleDB, dbPerms []rolePermissionDB) ([]rolebus.Role, error) {
	bus := make([]rolebus.Role, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusRole(db, dbPerms)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
