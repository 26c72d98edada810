package membershipapp

import (
	"net/http"

	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/domain/accessbus/stores/accesscache"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log           *logger.Logger
	Auth          *auth.Auth
	MembershipBus *membershipbus.Core
	AccessBus     *accessbus.Core
	AccessCache   *accesscache.Store
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveWorkspace()
	view := mid.Authorize(cfg.Log, cfg.AccessBus, resource.WorkspaceUsers, actions.View)
	change := mid.Authorize(cfg.Log, cfg.AccessBus, resource.WorkspaceUsers, actions.Change)

	api := newApp(cfg.MembershipBus, cfg.AccessCache)

	app.HandlerFunc(http.MethodGet, version, "/members", api.query, authen, resolve, view)
	app.HandlerFunc(http.MethodPut, version, "/members/{membership_id}", api.update, authen, resolve, change)
	app.HandlerFunc(http.MethodDelete, version, "/members/{membership_id}", api.deactivate, authen, resolve, change)
	app.HandlerFunc(http.MethodPut, version, "/members/{membership_id}/overrides", api.setOverride, authen, resolve, change)
	app.HandlerFunc(http.MethodDelete, version, "/members/{membership_id}/overrides/{code}", api.deleteOverride, authen, resolve, change)
}
