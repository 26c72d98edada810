package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/userbus"
	"github.com/planora/planora/business/sdk/web"
)

// LoadUser loads the authenticated user into the context for routes that
// operate on the caller's own account.
func LoadUser(userBus *userbus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			userID, err := GetUserID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			usr, err := userBus.QueryByID(ctx, userID)
			if err != nil {
				if errors.Is(err, userbus.ErrNotFound) {
					return errs.New(errs.Unauthenticated, err)
				}
				return errs.Errorf(errs.Internal, "querybyid: userID[%s]: %s", userID, err)
			}

			ctx = setUser(ctx, usr)

			return next(ctx, r)
		}

		return h
	}

	return m
}
