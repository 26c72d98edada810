// Package organizationapp provides the application layer for brand
// identity settings.
package organizationapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/organizationbus"
	"github.com/planora/planora/business/sdk/web"
)

type app struct {
	organizationBus *organizationbus.Core
}

func newApp(organizationBus *organizationbus.Core) *app {
	return &app{
		organizationBus: organizationBus,
	}
}

// create adds a new organization.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewOrganization
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	no, err := toBusNewOrganization(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	org, err := a.organizationBus.Create(ctx, no)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "create organization: %s", err)
	}

	return toAppOrganization(org)
}

// update changes an organization's name or brand.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateOrganization
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	org, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	uo, err := toBusUpdateOrganization(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updOrg, err := a.organizationBus.Update(ctx, org, uo)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update organization: organizationID[%s]: %s", org.ID, err)
	}

	return toAppOrganization(updOrg)
}

// delete removes an organization.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	org, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := a.organizationBus.Delete(ctx, org); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete organization: organizationID[%s]: %s", org.ID, err)
	}

	return nil
}

// queryByID returns an organization by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	org, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppOrganization(org)
}

func (a *app) load(ctx context.Context, r *http.Request) (organizationbus.Organization, web.Encoder) {
	organizationID, err := uuid.Parse(r.PathValue("organization_id"))
	if err != nil {
		return organizationbus.Organization{}, errs.NewFieldErrors("organization_id", err)
	}

	org, err := a.organizationBus.QueryByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, organizationbus.ErrNotFound) {
			return organizationbus.Organization{}, errs.New(errs.NotFound, err)
		}
		return organizationbus.Organization{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: organizationID[%s]: %s", organizationID, err)
	}

	return org, nil
}
