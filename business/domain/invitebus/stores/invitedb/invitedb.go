// Package invitedb contains invite related CRUD functionality.
package invitedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/planora/planora/business/domain/invitebus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
)

// Store manages the set of APIs for invite database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (invitebus.Storer, error) {
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

// Create inserts a new invite into the database.
func (s *Store) Create(ctx context.Context, inv invitebus.Invite) error {
	const q = `
	INSERT INTO "public"."workspace_invite"
		(invite_id, workspace_id, email, role_id, token, accepted, accepted_at, created_by, created_at, updated_at)
	VALUES
		(:invite_id, :workspace_id, :email, :role_id, :token, :accepted, :accepted_at, :created_by, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBInvite(inv)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "uq_invite_workspace_email" {
				return fmt.Errorf("namedexeccontext: %w", invitebus.ErrUniqueInvite)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes an invite from the database.
func (s *Store) Delete(ctx context.Context, inv invitebus.Invite) error {
	const q = `
	DELETE FROM
		"public"."workspace_invite"
	WHERE
		invite_id = :invite_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBInvite(inv)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Accept flips the invite to accepted. The guard on the accepted column
// makes the flip first writer wins.
func (s *Store) Accept(ctx context.Context, inv invitebus.Invite) error {
	const q = `
	UPDATE
		"public"."workspace_invite"
	SET
		accepted = true,
		accepted_at = :accepted_at,
		updated_at = :updated_at
	WHERE
		invite_id = :invite_id AND NOT accepted`

	rows, err := sqldb.NamedExecContextRows(ctx, s.log, s.db, q, toDBInvite(inv))
	if err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if rows == 0 {
		return invitebus.ErrAlreadyAccepted
	}

	return nil
}

// QueryByID gets the specified invite from the database.
func (s *Store) QueryByID(ctx context.Context, inviteID uuid.UUID) (invitebus.Invite, error) {
	data := struct {
		ID string `db:"invite_id"`
	}{
		ID: inviteID.String(),
	}

	const q = `
	SELECT
		invite_id, workspace_id, email, role_id, token, accepted, accepted_at, created_by, created_at, updated_at
	FROM
		"public"."workspace_invite"
	WHERE
		invite_id = :invite_id`

	var dbInv inviteDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbInv); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return invitebus.Invite{}, fmt.Errorf("db: %w", invitebus.ErrNotFound)
		}
		return invitebus.Invite{}, fmt.Errorf("db: %w", err)
	}

	return toBusInvite(dbInv), nil
}

// QueryByToken gets the invite carrying the specified token.
func (s *Store) QueryByToken(ctx context.Context, token string) (invitebus.Invite, error) {
	data := struct {
		Token string `db:"token"`
	}{
		Token: token,
	}

	const q = `
	SELECT
		invite_id, workspace_id, email, role_id, token, accepted, accepted_at, created_by, created_at, updated_at
	FROM
		"public"."workspace_invite"
	WHERE
		token = :token`

	var dbInv inviteDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbInv); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return invitebus.Invite{}, fmt.Errorf("db: %w", invitebus.ErrNotFound)
		}
		return invitebus.Invite{}, fmt.Errorf("db: %w", err)
	}

	return toBusInvite(dbInv), nil
}

// QueryByWorkspace gets the invites issued for the workspace.
func (s *Store) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]invitebus.Invite, error) {
	data := struct {
		ID string `db:"workspace_id"`
	}{
		ID: workspaceID.String(),
	}

	const q = `
	SELECT
		invite_id, workspace_id, email, role_id, token, accepted, accepted_at, created_by, created_at, updated_at
	FROM
		"public"."workspace_invite"
	WHERE
		workspace_id = :workspace_id
	ORDER BY
		created_at`

	var dbInvs []inviteDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbInvs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusInvites(dbInvs), nil
}
