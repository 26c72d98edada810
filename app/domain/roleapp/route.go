package roleapp

import (
	"net/http"

	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/domain/accessbus/stores/accesscache"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log         *logger.Logger
	Auth        *auth.Auth
	RoleBus     *rolebus.Core
	AccessBus   *accessbus.Core
	Registry    *permission.Registry
	AccessCache *accesscache.Store
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveWorkspace()
	view := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Roles, actions.View)
	change := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Roles, actions.Change)

	api := newApp(cfg.RoleBus, cfg.Registry, cfg.AccessCache)

	app.HandlerFunc(http.MethodGet, version, "/roles", api.query, authen, resolve, view)
	app.HandlerFunc(http.MethodGet, version, "/roles/permissions", api.queryPermissions, authen, resolve, view)
	app.HandlerFunc(http.MethodPost, version, "/roles", api.create, authen, resolve, change)
	app.HandlerFunc(http.MethodPut, version, "/roles/{role_id}", api.update, authen, resolve, change)
	app.HandlerFunc(http.MethodDelete, version, "/roles/{role_id}", api.delete, authen, resolve, change)
}
