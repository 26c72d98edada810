// Package roleapp provides the application layer for workspace roles.
package roleapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus/stores/accesscache"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/permission"
)

type app struct {
	roleBus     *rolebus.Core
	registry    *permission.Registry
	accessCache *accesscache.Store
}

func newApp(roleBus *rolebus.Core, registry *permission.Registry, accessCache *accesscache.Store) *app {
	return &app{
		roleBus:     roleBus,
		registry:    registry,
		accessCache: accessCache,
	}
}

// create adds a custom role to the resolved workspace.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewRole
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.Errorf(errs.PermissionDenied, "access denied")
	}

	nr, err := toBusNewRole(app, workspaceID, a.registry)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	rl, err := a.roleBus.Create(ctx, nr)
	if err != nil {
		if errors.Is(err, rolebus.ErrUniqueName) {
			return errs.New(errs.Aborted, rolebus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create role: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppRole(rl)
}

// update changes a role's name or grants. System roles cannot be touched.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateRole
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	rl, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	ur, err := toBusUpdateRole(app, a.registry)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updRl, err := a.roleBus.Update(ctx, rl, ur)
	if err != nil {
		if errors.Is(err, rolebus.ErrSystemRole) {
			return errs.New(errs.PermissionDenied, rolebus.ErrSystemRole)
		}
		if errors.Is(err, rolebus.ErrUniqueName) {
			return errs.New(errs.Aborted, rolebus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update role: roleID[%s]: %s", rl.ID, err)
	}

	a.accessCache.InvalidateWorkspace(ctx, rl.WorkspaceID)

	return toAppRole(updRl)
}

// delete removes a custom role.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	rl, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.roleBus.Delete(ctx, rl); err != nil {
		if errors.Is(err, rolebus.ErrSystemRole) {
			return errs.New(errs.PermissionDenied, rolebus.ErrSystemRole)
		}
		return errs.Errorf(errs.InternalOnlyLog, "delete role: roleID[%s]: %s", rl.ID, err)
	}

	a.accessCache.InvalidateWorkspace(ctx, rl.WorkspaceID)

	return nil
}

// query returns the roles of the resolved workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.Errorf(errs.PermissionDenied, "access denied")
	}

	rls, err := a.roleBus.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return errs.Errorf(errs.Internal, "querybyworkspace: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppRoles(rls)
}

// queryPermissions returns the permission vocabulary roles can grant from.
func (a *app) queryPermissions(_ context.Context, _ *http.Request) web.Encoder {
	return toAppDefinitions(a.registry.Definitions())
}

func (a *app) load(ctx context.Context, r *http.Request) (rolebus.Role, web.Encoder) {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return rolebus.Role{}, errs.Errorf(errs.PermissionDenied, "access denied")
	}

	roleID, err := uuid.Parse(r.PathValue("role_id"))
	if err != nil {
		return rolebus.Role{}, errs.NewFieldErrors("role_id", err)
	}

	rl, err := a.roleBus.QueryByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, rolebus.ErrNotFound) {
			return rolebus.Role{}, errs.New(errs.NotFound, err)
		}
		return rolebus.Role{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: roleID[%s]: %s", roleID, err)
	}

	if rl.WorkspaceID != workspaceID {
		return rolebus.Role{}, errs.New(errs.NotFound, rolebus.ErrNotFound)
	}

	return rl, nil
}
