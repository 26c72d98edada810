package organizationapp

import (
	"net/http"

	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/domain/organizationbus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log             *logger.Logger
	Auth            *auth.Auth
	OrganizationBus *organizationbus.Core
	AccessBus       *accessbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveWorkspace()
	view := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Organization, actions.View)
	change := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Organization, actions.Change)

	api := newApp(cfg.OrganizationBus)

	app.HandlerFunc(http.MethodPost, version, "/organizations", api.create, authen, resolve, change)
	app.HandlerFunc(http.MethodGet, version, "/organizations/{organization_id}", api.queryByID, authen, resolve, view)
	app.HandlerFunc(http.MethodPut, version, "/organizations/{organization_id}", api.update, authen, resolve, change)
	app.HandlerFunc(http.MethodDelete, version, "/organizations/{organization_id}", api.delete, authen, resolve, change)
}
