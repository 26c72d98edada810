// Package subscriptiondb contains subscription related CRUD functionality.
package subscriptiondb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
)

// Store manages the set of APIs for subscription database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (subscriptionbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new subscription into the database.
func (s *Store) Create(ctx context.Context, sb subscriptionbus.Subscription) error {
	const q = `
	INSERT INTO "public"."subscription"
		(subscription_id, workspace_id, plan, pending_plan, status, limit_users, limit_campaigns, limit_planning, created_at, updated_at)
	VALUES
		(:subscription_id, :workspace_id, :plan, :pending_plan, :status, :limit_users, :limit_campaigns, :limit_planning, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBSubscription(sb)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "uq_subscription_workspace" {
				return fmt.Errorf("namedexeccontext: %w", subscriptionbus.ErrUniqueWorkspace)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a subscription document in the database.
func (s *Store) Update(ctx context.Context, sb subscriptionbus.Subscription) error {
	const q = `
	UPDATE
		"public"."subscription"
	SET
		plan = :plan,
		pending_plan = :pending_plan,
		status = :status,
		limit_users = :limit_users,
		limit_campaigns = :limit_campaigns,
		limit_planning = :limit_planning,
		updated_at = :updated_at
	WHERE
		subscription_id = :subscription_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBSubscription(sb)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified subscription from the database.
func (s *Store) QueryByID(ctx context.Context, subscriptionID uuid.UUID) (subscriptionbus.Subscription, error) {
	data := struct {
		ID string `db:"subscription_id"`
	}{
		ID: subscriptionID.String(),
	}

	const q = `
	SELECT
		subscription_id, workspace_id, plan, pending_plan, status, limit_users, limit_campaigns, limit_planning, created_at, updated_at
	FROM
		"public"."subscription"
	WHERE
		subscription_id = :subscription_id`

	var dbSb subscriptionDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSb); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", subscriptionbus.ErrNotFound)
		}
		return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", err)
	}

	return toBusSubscription(dbSb)
}

// QueryByWorkspace gets the subscription for the workspace.
func (s *Store) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) (subscriptionbus.Subscription, error) {
	data := struct {
		ID string `db:"workspace_id"`
	}{
		ID: workspaceID.String(),
	}

	const q = `
	SELECT
		subscription_id, workspace_id, plan, pending_plan, status, limit_users, limit_campaigns, limit_planning, created_at, updated_at
	FROM
		"public"."subscription"
	WHERE
		workspace_id = :workspace_id`

	var dbSb subscriptionDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSb); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", subscriptionbus.ErrNotFound)
		}
		return subscriptionbus.Subscription{}, fmt.Errorf("db: %w", err)
	}

	return toBusSubscription(dbSb)
}
