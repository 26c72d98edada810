package mid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/sdk/web"
)

// ResolveWorkspace extracts the workspace the request operates on. The
// X-Workspace-ID header wins, then the workspace_id query parameter, then a
// workspace_id path parameter. A request without any of them passes through
// untouched so workspace-free routes keep working.
func ResolveWorkspace() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			raw := r.Header.Get("X-Workspace-ID")

			if raw == "" {
				raw = r.URL.Query().Get("workspace_id")
			}

			if raw == "" {
				raw = r.PathValue("workspace_id")
			}

			if raw == "" {
				return next(ctx, r)
			}

			workspaceID, err := uuid.Parse(raw)
			if err != nil {
				return errs.Errorf(errs.InvalidArgument, "invalid workspace id: %q", raw)
			}

			ctx = setWorkspaceID(ctx, workspaceID)

			return next(ctx, r)
		}

		return h
	}

	return m
}
