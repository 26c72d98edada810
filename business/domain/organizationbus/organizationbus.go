// Package organizationbus provides business access to organization profile
// domain.
package organizationbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
	"github.com/planora/planora/foundation/otel"
)

var ErrNotFound = errors.New("organization not found")

// Storer defines the behavior required by the organizationbus to interact
// with the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, org Organization) error
	Update(ctx context.Context, org Organization) error
	Delete(ctx context.Context, org Organization) error
	QueryByID(ctx context.Context, organizationID uuid.UUID) (Organization, error)
}

// Core manages the set of APIs for organization access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for organization api access.
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

// Create adds a new organization profile.
func (c *Core) Create(ctx context.Context, no NewOrganization) (Organization, error) {
	ctx, span := otel.AddSpan(ctx, "business.organizationbus.create")
	defer span.End()

	now := time.Now()

	org := Organization{
		ID:        uuid.New(),
		Name:      no.Name,
		Brand:     no.Brand,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, org); err != nil {
		return Organization{}, fmt.Errorf("create: %w", err)
	}

	return org, nil
}

// Update modifies data about an organization.
func (c *Core) Update(ctx context.Context, org Organization, uo UpdateOrganization) (Organization, error) {
	ctx, span := otel.AddSpan(ctx, "business.organizationbus.update")
	defer span.End()

	if uo.Name != nil {
		org.Name = *uo.Name
	}

	if uo.Brand != nil {
		org.Brand = *uo.Brand
	}

	org.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, org); err != nil {
		return Organization{}, fmt.Errorf("update: %w", err)
	}

	return org, nil
}

// Delete removes the specified organization.
func (c *Core) Delete(ctx context.Context, org Organization) error {
	ctx, span := otel.AddSpan(ctx, "business.organizationbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, org); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the organization by the specified ID.
func (c *Core) QueryByID(ctx context.Context, organizationID uuid.UUID) (Organization, error) {
	ctx, span := otel.AddSpan(ctx, "business.organizationbus.queryByID")
	defer span.End()

	org, err := c.storer.QueryByID(ctx, organizationID)
	if err != nil {
		return Organization{}, fmt.Errorf("query: organizationID[%s]: %w", organizationID, err)
	}

	return org, nil
}
