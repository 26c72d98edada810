package subscriptionapp

import (
	"net/http"

	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log             *logger.Logger
	Auth            *auth.Auth
	SubscriptionBus *subscriptionbus.Core
	AccessBus       *accessbus.Core
	Payments        subscriptionbus.PaymentProvider
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	resolve := mid.ResolveWorkspace()
	view := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Subscription, actions.View)
	change := mid.Authorize(cfg.Log, cfg.AccessBus, resource.Subscription, actions.Change)

	api := newApp(cfg.SubscriptionBus, cfg.Payments)

	app.HandlerFunc(http.MethodGet, version, "/subscription", api.query, authen, resolve, view)
	app.HandlerFunc(http.MethodPost, version, "/subscription/plan", api.choosePlan, authen, resolve, change)
	app.HandlerFunc(http.MethodPost, version, "/subscription/confirm", api.confirmPlan, authen, resolve, change)
}
