package subscriptionapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/subscriptionbus"
)

// Limits reports the capacity the current plan buys.
type Limits struct {
	Users     int `json:"users"`
	Campaigns int `json:"campaigns"`
	Planning  int `json:"planning"`
}

// Subscription represents a workspace's billing state.
type Subscription struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	Plan        string `json:"plan"`
	PendingPlan string `json:"pendingPlan,omitempty"`
	Status      string `json:"status"`
	Limits      Limits `json:"limits"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (s Subscription) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppSubscription(bus subscriptionbus.Subscription) Subscription {
	app := Subscription{
		ID:          bus.ID.String(),
		WorkspaceID: bus.WorkspaceID.String(),
		Plan:        bus.Plan.String(),
		Status:      bus.Status,
		Limits: Limits{
			Users:     bus.Limits.Users,
			Campaigns: bus.Limits.Campaigns,
			Planning:  bus.Limits.Planning,
		},
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if !bus.PendingPlan.IsZero() {
		app.PendingPlan = bus.PendingPlan.String()
	}

	return app
}

// Checkout carries the payment session for a pending plan change.
type Checkout struct {
	URL       string `json:"url"`
	Reference string `json:"reference"`
}

// PlanChange is the response to a plan choice.
type PlanChange struct {
	Subscription Subscription `json:"subscription"`
	Checkout     *Checkout    `json:"checkout,omitempty"`
}

// Encode implements the web.Encoder interface.
func (p PlanChange) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppPlanChange(bus subscriptionbus.Subscription, session *subscriptionbus.CheckoutSession) PlanChange {
	app := PlanChange{
		Subscription: toAppSubscription(bus),
	}

	if session != nil {
		app.Checkout = &Checkout{
			URL:       session.URL,
			Reference: session.Reference,
		}
	}

	return app
}

// ChoosePlan defines the data needed to request a plan change.
type ChoosePlan struct {
	Plan string `json:"plan" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *ChoosePlan) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app ChoosePlan) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// ConfirmPlan defines the data needed to settle a pending plan change.
type ConfirmPlan struct {
	Reference string `json:"reference" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *ConfirmPlan) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app ConfirmPlan) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
