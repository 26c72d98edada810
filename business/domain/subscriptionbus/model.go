package subscriptionbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/types/plan"
)

// Subscription statuses.
const (
	StatusActive        = "active"
	StatusPendingChange = "pending_change"
)

// Subscription ties a workspace to a billing plan and the capacity that
// plan buys.
type Subscription struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Plan        plan.Plan
	PendingPlan plan.Plan
	Status      string
	Limits      plan.Limits
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSubscription contains information needed to start a subscription.
type NewSubscription struct {
	WorkspaceID uuid.UUID
	Plan        plan.Plan
}

// CheckoutSession is what a payment provider hands back for a paid plan
// change.
type CheckoutSession struct {
	URL       string
	Reference string
}
