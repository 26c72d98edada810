package inviteapp

import (
	"net/http"

	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/domain/invitebus"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/domain/userbus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log             *logger.Logger
	DB              sqldb.Beginner
	Auth            *auth.Auth
	UserBus         *userbus.Core
	InviteBus       *invitebus.Core
	MembershipBus   *membershipbus.Core
	SubscriptionBus *subscriptionbus.Core
	AccessBus       *accessbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	loadUser := mid.LoadUser(cfg.UserBus)
	resolve := mid.ResolveWorkspace()
	view := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Invites, actions.View)
	change := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Invites, actions.Change)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg)

	app.HandlerFunc(http.MethodGet, version, "/invites", api.query, authen, resolve, view)
	app.HandlerFunc(http.MethodPost, version, "/invites", api.create, authen, resolve, change)
	app.HandlerFunc(http.MethodDelete, version, "/invites/{invite_id}", api.delete, authen, resolve, change)

	app.HandlerFunc(http.MethodPost, version, "/invites/accept", api.accept, authen, loadUser, transaction)
}
