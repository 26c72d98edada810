// Package workspacedb contains workspace related CRUD functionality.
package workspacedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/planora/planora/business/domain/workspacebus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
)

// Store manages the set of APIs for workspace database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (workspacebus.Storer, error) {
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

// Create inserts a new workspace into the database.
func (s *Store) Create(ctx context.Context, ws workspacebus.Workspace) error {
	const q = `
	INSERT INTO "public"."workspace"
		(workspace_id, name, owner_id, organization_id, created_at, updated_at, deleted_at)
	VALUES
		(:workspace_id, :name, :owner_id, :organization_id, :created_at, :updated_at, :deleted_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkspace(ws)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "uq_workspace_owner_name" {
				return fmt.Errorf("namedexeccontext: %w", workspacebus.ErrUniqueName)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a workspace document in the database.
func (s *Store) Update(ctx context.Context, ws workspacebus.Workspace) error {
	const q = `
	UPDATE
		"public"."workspace"
	SET
		name = :name,
		organization_id = :organization_id,
		updated_at = :updated_at
	WHERE
		workspace_id = :workspace_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkspace(ws)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "uq_workspace_owner_name" {
				return workspacebus.ErrUniqueName
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete marks a workspace as deleted in the database.
func (s *Store) Delete(ctx context.Context, ws workspacebus.Workspace) error {
	const q = `
	UPDATE
		"public"."workspace"
	SET
		deleted_at = :deleted_at,
		updated_at = :updated_at
	WHERE
		workspace_id = :workspace_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkspace(ws)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified workspace from the database.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID) (workspacebus.Workspace, error) {
	data := struct {
		ID string `db:"workspace_id"`
	}{
		ID: workspaceID.String(),
	}

	const q = `
	SELECT
		workspace_id, name, owner_id, organization_id, created_at, updated_at, deleted_at
	FROM
		"public"."workspace"
	WHERE
		workspace_id = :workspace_id AND deleted_at IS NULL`

	var dbWS workspaceDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbWS); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return workspacebus.Workspace{}, fmt.Errorf("db: %w", workspacebus.ErrNotFound)
		}
		return workspacebus.Workspace{}, fmt.Errorf("db: %w", err)
	}

	return toBusWorkspace(dbWS)
}

// QueryByOwner gets the workspaces owned by the specified user.
func (s *Store) QueryByOwner(ctx context.Context, ownerID uuid.UUID) ([]workspacebus.Workspace, error) {
	data := struct {
		OwnerID string `db:"owner_id"`
	}{
		OwnerID: ownerID.String(),
	}

	const q = `
	SELECT
		workspace_id, name, owner_id, organization_id, created_at, updated_at, deleted_at
	FROM
		"public"."workspace"
	WHERE
		owner_id = :owner_id AND deleted_at IS NULL
	ORDER BY
		created_at`

	var dbWSs []workspaceDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbWSs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusWorkspaces(dbWSs)
}

// QueryForUser gets the workspaces where the specified user holds an active
// membership.
func (s *Store) QueryForUser(ctx context.Context, userID uuid.UUID) ([]workspacebus.Workspace, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		w.workspace_id, w.name, w.owner_id, w.organization_id, w.created_at, w.updated_at, w.deleted_at
	FROM
		"public"."workspace" AS w
	JOIN
		"public"."workspace_membership" AS m ON m.workspace_id = w.workspace_id
	WHERE
		m.user_id = :user_id AND m.active AND w.deleted_at IS NULL
	ORDER BY
		w.created_at`

	var dbWSs []workspaceDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbWSs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusWorkspaces(dbWSs)
}
