// Package subscriptionbus provides business access to workspace
// subscription domain.
package subscriptionbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/plan"
	"github.com/planora/planora/foundation/logger"
	"github.com/planora/planora/foundation/otel"
)

var (
	ErrNotFound        = errors.New("subscription not found")
	ErrUniqueWorkspace = errors.New("workspace already has a subscription")
	ErrSamePlan        = errors.New("workspace is already on that plan")
	ErrNoPendingPlan   = errors.New("no plan change pending")
)

// Storer defines the behavior required by the subscriptionbus to interact
// with the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, sb Subscription) error
	Update(ctx context.Context, sb Subscription) error
	QueryByID(ctx context.Context, subscriptionID uuid.UUID) (Subscription, error)
	QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) (Subscription, error)
}

// PaymentProvider creates and settles checkout sessions for paid plan
// changes. The business layer never talks to a payment gateway directly.
// Retry and backoff against the gateway are the provider's concern.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, workspaceID uuid.UUID, p plan.Plan) (CheckoutSession, error)
	ConfirmCheckout(ctx context.Context, workspaceID uuid.UUID, reference string) error
}

// Core manages the set of APIs for subscription access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for subscription api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create starts a workspace on the specified plan. Every workspace gets
// exactly one subscription.
func (c *Core) Create(ctx context.Context, ns NewSubscription) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.create")
	defer span.End()

	now := time.Now()

	sb := Subscription{
		ID:          uuid.New(),
		WorkspaceID: ns.WorkspaceID,
		Plan:        ns.Plan,
		Status:      StatusActive,
		Limits:      plan.LimitsFor(ns.Plan),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, sb); err != nil {
		return Subscription{}, fmt.Errorf("create: %w", err)
	}

	return sb, nil
}

// ChoosePlan records the intent to move to a new plan. Moving down to free
// needs no payment and applies on the spot. Paid plans stay pending until
// the payment confirmation lands.
func (c *Core) ChoosePlan(ctx context.Context, sb Subscription, p plan.Plan) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.choosePlan")
	defer span.End()

	if sb.Plan.Equal(p) && sb.PendingPlan.IsZero() {
		return Subscription{}, ErrSamePlan
	}

	if p.Equal(plan.Free) {
		return c.apply(ctx, sb, p)
	}

	sb.PendingPlan = p
	sb.Status = StatusPendingChange
	sb.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, sb); err != nil {
		return Subscription{}, fmt.Errorf("update: %w", err)
	}

	return sb, nil
}

// ConfirmPlan applies the pending plan after payment confirmation.
func (c *Core) ConfirmPlan(ctx context.Context, sb Subscription) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.confirmPlan")
	defer span.End()

	if sb.PendingPlan.IsZero() {
		return Subscription{}, ErrNoPendingPlan
	}

	return c.apply(ctx, sb, sb.PendingPlan)
}

// QueryByID finds the subscription by the specified ID.
func (c *Core) QueryByID(ctx context.Context, subscriptionID uuid.UUID) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.queryByID")
	defer span.End()

	sb, err := c.storer.QueryByID(ctx, subscriptionID)
	if err != nil {
		return Subscription{}, fmt.Errorf("query: subscriptionID[%s]: %w", subscriptionID, err)
	}

	return sb, nil
}

// QueryByWorkspace finds the subscription for the workspace.
func (c *Core) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) (Subscription, error) {
	ctx, span := otel.AddSpan(ctx, "business.subscriptionbus.queryByWorkspace")
	defer span.End()

	sb, err := c.storer.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return Subscription{}, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return sb, nil
}

func (c *Core) apply(ctx context.Context, sb Subscription, p plan.Plan) (Subscription, error) {
	sb.Plan = p
	sb.PendingPlan = plan.Plan{}
	sb.Status = StatusActive
	sb.Limits = plan.LimitsFor(p)
	sb.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, sb); err != nil {
		return Subscription{}, fmt.Errorf("update: %w", err)
	}

	return sb, nil
}
