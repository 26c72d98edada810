// Package all binds every route group into the instance.
package all

import (
	"fmt"
	"time"

	"github.com/planora/planora/app/domain/authapp"
	"github.com/planora/planora/app/domain/checkapp"
	"github.com/planora/planora/app/domain/inviteapp"
	"github.com/planora/planora/app/domain/membershipapp"
	"github.com/planora/planora/app/domain/organizationapp"
	"github.com/planora/planora/app/domain/roleapp"
	"github.com/planora/planora/app/domain/subscriptionapp"
	"github.com/planora/planora/app/domain/userapp"
	"github.com/planora/planora/app/domain/workspaceapp"
	"github.com/planora/planora/app/sdk/auth"
	"github.com/planora/planora/app/sdk/mux"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/domain/accessbus/stores/accesscache"
	"github.com/planora/planora/business/domain/accessbus/stores/accessdb"
	"github.com/planora/planora/business/domain/invitebus"
	"github.com/planora/planora/business/domain/invitebus/stores/invitedb"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/domain/membershipbus/stores/membershipdb"
	"github.com/planora/planora/business/domain/organizationbus"
	"github.com/planora/planora/business/domain/organizationbus/stores/organizationdb"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/domain/rolebus/stores/roledb"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/domain/subscriptionbus/providers/devpay"
	"github.com/planora/planora/business/domain/subscriptionbus/stores/subscriptiondb"
	"github.com/planora/planora/business/domain/userbus"
	"github.com/planora/planora/business/domain/userbus/stores/usercache"
	"github.com/planora/planora/business/domain/userbus/stores/userdb"
	"github.com/planora/planora/business/domain/workspacebus"
	"github.com/planora/planora/business/domain/workspacebus/stores/workspacedb"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/permission"
)

// Routes constructs the add value which provides the implementation of
// RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	registry := permission.NewRegistry(permission.Core)

	userBus := userbus.NewCore(usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), time.Minute*5))
	workspaceBus := workspacebus.NewCore(cfg.Log, workspacedb.NewStore(cfg.Log, cfg.DB))
	roleBus := rolebus.NewCore(cfg.Log, roledb.NewStore(cfg.Log, cfg.DB))
	membershipBus := membershipbus.NewCore(cfg.Log, membershipdb.NewStore(cfg.Log, cfg.DB))
	inviteBus := invitebus.NewCore(cfg.Log, invitedb.NewStore(cfg.Log, cfg.DB))
	subscriptionBus := subscriptionbus.NewCore(cfg.Log, subscriptiondb.NewStore(cfg.Log, cfg.DB))
	organizationBus := organizationbus.NewCore(cfg.Log, organizationdb.NewStore(cfg.Log, cfg.DB))

	accessCache, err := accesscache.NewStore(cfg.Log, accessdb.NewStore(cfg.Log, cfg.DB))
	if err != nil {
		panic(fmt.Sprintf("building access cache: %s", err))
	}
	accessBus := accessbus.NewCore(cfg.Log, accessCache)

	payments := devpay.New(cfg.Log, cfg.DynConfig)

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
		ActiveKID: cfg.AuthConfig.ActiveKID,
	})

	beginner := sqldb.NewBeginner(cfg.DB)

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth: authClient,
	})

	userapp.Routes(app, userapp.Config{
		Auth:    authClient,
		UserBus: userBus,
	})

	workspaceapp.Routes(app, workspaceapp.Config{
		Log:             cfg.Log,
		DB:              beginner,
		Auth:            authClient,
		WorkspaceBus:    workspaceBus,
		RoleBus:         roleBus,
		MembershipBus:   membershipBus,
		SubscriptionBus: subscriptionBus,
		AccessBus:       accessBus,
		Registry:        registry,
		AccessCache:     accessCache,
	})

	membershipapp.Routes(app, membershipapp.Config{
		Log:           cfg.Log,
		Auth:          authClient,
		MembershipBus: membershipBus,
		AccessBus:     accessBus,
		AccessCache:   accessCache,
	})

	roleapp.Routes(app, roleapp.Config{
		Log:         cfg.Log,
		Auth:        authClient,
		RoleBus:     roleBus,
		AccessBus:   accessBus,
		Registry:    registry,
		AccessCache: accessCache,
	})

	inviteapp.Routes(app, inviteapp.Config{
		Log:             cfg.Log,
		DB:              beginner,
		Auth:            authClient,
		UserBus:         userBus,
		InviteBus:       inviteBus,
		MembershipBus:   membershipBus,
		SubscriptionBus: subscriptionBus,
		AccessBus:       accessBus,
	})

	subscriptionapp.Routes(app, subscriptionapp.Config{
		Log:             cfg.Log,
		Auth:            authClient,
		SubscriptionBus: subscriptionBus,
		AccessBus:       accessBus,
		Payments:        payments,
	})

	organizationapp.Routes(app, organizationapp.Config{
		Log:             cfg.Log,
		Auth:            authClient,
		OrganizationBus: organizationBus,
		AccessBus:       accessBus,
	})
}
