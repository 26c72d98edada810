// Package devpay is a payment provider for development and test
// environments. Checkout sessions point at a configurable fake gateway and
// every payment is considered settled the moment it is confirmed.
package devpay

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/sdk/dynconfig"
	"github.com/planora/planora/business/types/plan"
	"github.com/planora/planora/foundation/logger"
)

// Provider implements subscriptionbus.PaymentProvider.
type Provider struct {
	log *logger.Logger
	cfg *dynconfig.Config
}

// New constructs a dev payment provider.
func New(log *logger.Logger, cfg *dynconfig.Config) *Provider {
	return &Provider{
		log: log,
		cfg: cfg,
	}
}

// CreateCheckout returns a checkout session against the configured fake
// gateway.
func (p *Provider) CreateCheckout(ctx context.Context, workspaceID uuid.UUID, pl plan.Plan) (subscriptionbus.CheckoutSession, error) {
	base := p.cfg.Get("payments.checkout_url", "http://localhost:9500/checkout")
	ref := uuid.New().String()

	p.log.Info(ctx, "devpay: checkout created", "workspace_id", workspaceID, "plan", pl, "reference", ref)

	return subscriptionbus.CheckoutSession{
		URL:       fmt.Sprintf("%s?ref=%s&plan=%s", base, ref, pl),
		Reference: ref,
	}, nil
}

// ConfirmCheckout treats every referenced session as settled, which is the
// point of a dev gateway.
func (p *Provider) ConfirmCheckout(ctx context.Context, workspaceID uuid.UUID, reference string) error {
	if reference == "" {
		return fmt.Errorf("missing checkout reference")
	}

	p.log.Info(ctx, "devpay: checkout confirmed", "workspace_id", workspaceID, "reference", reference)

	return nil
}
