package workspaceapp

import (
	"net/http"

	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/domain/accessbus/stores/accesscache"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/domain/workspacebus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log             *logger.Logger
	DB              sqldb.Beginner
	Auth            *auth.Auth
	WorkspaceBus    *workspacebus.Core
	RoleBus         *rolebus.Core
	MembershipBus   *membershipbus.Core
	SubscriptionBus *subscriptionbus.Core
	AccessBus       *accessbus.Core
	Registry        *permission.Registry
	AccessCache     *accesscache.Store
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveWorkspace()
	member := mid.AuthorizeMember(cfg.Log, cfg.AccessBus)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg)

	app.HandlerFunc(http.MethodPost, version, "/workspaces", api.create, authen, transaction)
	app.HandlerFunc(http.MethodGet, version, "/workspaces", api.query, authen)
	app.HandlerFunc(http.MethodGet, version, "/workspaces/{workspace_id}", api.queryByID, authen, resolve, member)
	app.HandlerFunc(http.MethodPut, version, "/workspaces/{workspace_id}", api.update, authen, resolve)
	app.HandlerFunc(http.MethodDelete, version, "/workspaces/{workspace_id}", api.delete, authen, resolve)
}
