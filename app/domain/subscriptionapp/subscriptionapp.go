// Package subscriptionapp provides the application layer for workspace
// billing. Moving to a paid plan creates a checkout session and parks the
// change as pending until it is confirmed.
package subscriptionapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/plan"
)

type app struct {
	subscriptionBus *subscriptionbus.Core
	payments        subscriptionbus.PaymentProvider
}

func newApp(subscriptionBus *subscriptionbus.Core, payments subscriptionbus.PaymentProvider) *app {
	return &app{
		subscriptionBus: subscriptionBus,
		payments:        payments,
	}
}

// query returns the subscription of the resolved workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	sub, errResp := a.load(ctx)
	if errResp != nil {
		return errResp
	}

	return toAppSubscription(sub)
}

// choosePlan starts a plan change. A downgrade to free applies immediately,
// a paid plan comes back with a checkout session and stays pending.
func (a *app) choosePlan(ctx context.Context, r *http.Request) web.Encoder {
	var app ChoosePlan
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	p, err := plan.Parse(app.Plan)
	if err != nil {
		return errs.NewFieldErrors("plan", err)
	}

	sub, errResp := a.load(ctx)
	if errResp != nil {
		return errResp
	}

	updSub, err := a.subscriptionBus.ChoosePlan(ctx, sub, p)
	if err != nil {
		if errors.Is(err, subscriptionbus.ErrSamePlan) {
			return errs.New(errs.Aborted, subscriptionbus.ErrSamePlan)
		}
		return errs.Errorf(errs.InternalOnlyLog, "chooseplan: workspaceID[%s]: %s", sub.WorkspaceID, err)
	}

	if updSub.Status != subscriptionbus.StatusPendingChange {
		return toAppPlanChange(updSub, nil)
	}

	session, err := a.payments.CreateCheckout(ctx, updSub.WorkspaceID, p)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "checkout: workspaceID[%s]: %s", updSub.WorkspaceID, err)
	}

	return toAppPlanChange(updSub, &session)
}

// confirmPlan settles the checkout with the payment provider and applies
// the pending plan change.
func (a *app) confirmPlan(ctx context.Context, r *http.Request) web.Encoder {
	var app ConfirmPlan
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	sub, errResp := a.load(ctx)
	if errResp != nil {
		return errResp
	}

	if err := a.payments.ConfirmCheckout(ctx, sub.WorkspaceID, app.Reference); err != nil {
		return errs.Errorf(errs.FailedPrecondition, "payment not confirmed: %s", err)
	}

	updSub, err := a.subscriptionBus.ConfirmPlan(ctx, sub)
	if err != nil {
		if errors.Is(err, subscriptionbus.ErrNoPendingPlan) {
			return errs.New(errs.FailedPrecondition, subscriptionbus.ErrNoPendingPlan)
		}
		return errs.Errorf(errs.InternalOnlyLog, "confirmplan: workspaceID[%s]: %s", sub.WorkspaceID, err)
	}

	return toAppSubscription(updSub)
}

func (a *app) load(ctx context.Context) (subscriptionbus.Subscription, web.Encoder) {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return subscriptionbus.Subscription{}, errs.Errorf(errs.PermissionDenied, "access denied")
	}

	sub, err := a.subscriptionBus.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, subscriptionbus.ErrNotFound) {
			return subscriptionbus.Subscription{}, errs.New(errs.NotFound, err)
		}
		return subscriptionbus.Subscription{}, errs.Errorf(errs.InternalOnlyLog, "querybyworkspace: workspaceID[%s]: %s", workspaceID, err)
	}

	return sub, nil
}
