package userapp

import (
	"net/http"

	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/userbus"
	"github.com/planora/planora/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	loadUser := mid.LoadUser(cfg.UserBus)
	admin := mid.AuthorizeAdmin()

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodPost, version, "/users", api.register)

	app.HandlerFunc(http.MethodGet, version, "/users/me", api.queryMe, authen, loadUser)
	app.HandlerFunc(http.MethodPut, version, "/users/me", api.update, authen, loadUser)
	app.HandlerFunc(http.MethodDelete, version, "/users/me", api.delete, authen, loadUser)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, admin)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, authen, admin)
}
