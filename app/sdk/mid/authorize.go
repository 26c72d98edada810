package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/business/types/role"
	"github.com/planora/planora/foundation/logger"
)

// Authorize gates the request behind a workspace permission check. The
// resolved workspace is required here. When a route can be satisfied by an
// own scoped grant the caller supplies the owner through the owner_id query
// parameter; without it own scoped grants cannot match.
func Authorize(log *logger.Logger, access *accessbus.Core, res resource.Resource, act actions.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			userID, err := GetUserID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			// An unresolved workspace is a denial, the same outcome as a
			// missing membership. The response does not say which.
			workspaceID, err := GetWorkspaceID(ctx)
			if err != nil {
				return errs.Errorf(errs.PermissionDenied, "access denied")
			}

			var ownerID *uuid.UUID
			if raw := r.URL.Query().Get("owner_id"); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					return errs.Errorf(errs.InvalidArgument, "invalid owner id: %q", raw)
				}
				ownerID = &id
			}

			sub := accessbus.Subject{
				UserID:    userID,
				Superuser: GetClaims(ctx).Role == role.Admin.String(),
			}

			ctx, cancel := context.WithTimeout(ctx, time.Second*5)
			defer cancel()

			ok, err := access.Decide(ctx, sub, workspaceID, res, act, ownerID)
			if err != nil {
				log.Error(ctx, "authorize", "user_id", userID, "workspace_id", workspaceID, "err", err)
				return errs.New(errs.Internal, err)
			}

			if !ok {
				return errs.Errorf(errs.PermissionDenied, "access denied")
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizeAdmin admits platform administrators only.
func AuthorizeAdmin() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			if GetClaims(ctx).Role != role.Admin.String() {
				return errs.Errorf(errs.PermissionDenied, "access denied")
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizeMember admits any active member of the resolved workspace. Routes
// that only require belonging to the workspace use this instead of a
// permission code.
func AuthorizeMember(log *logger.Logger, access *accessbus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			userID, err := GetUserID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			workspaceID, err := GetWorkspaceID(ctx)
			if err != nil {
				return errs.Errorf(errs.PermissionDenied, "access denied")
			}

			if GetClaims(ctx).Role == role.Admin.String() {
				return next(ctx, r)
			}

			ctx, cancel := context.WithTimeout(ctx, time.Second*5)
			defer cancel()

			if _, err := access.Grants(ctx, accessbus.Subject{UserID: userID}, workspaceID); err != nil {
				log.Error(ctx, "authorize: member", "user_id", userID, "workspace_id", workspaceID, "err", err)
				return errs.Errorf(errs.PermissionDenied, "access denied")
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
