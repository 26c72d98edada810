// Package membershipdb contains membership related CRUD functionality.
package membershipdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/foundation/logger"
)

// Store manages the set of APIs for membership database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (membershipbus.Storer, error) {
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

// Create inserts a new membership into the database.
func (s *Store) Create(ctx context.Context, mem membershipbus.Membership) error {
	const q = `
	INSERT INTO "public"."workspace_membership"
		(membership_id, workspace_id, user_id, role_id, active, created_at, updated_at)
	VALUES
		(:membership_id, :workspace_id, :user_id, :role_id, :active, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMembership(mem)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "uq_membership_workspace_user" {
				return fmt.Errorf("namedexeccontext: %w", membershipbus.ErrUniqueMember)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a membership document in the database.
func (s *Store) Update(ctx context.Context, mem membershipbus.Membership) error {
	const q = `
	UPDATE
		"public"."workspace_membership"
	SET
		role_id = :role_id,
		active = :active,
		updated_at = :updated_at
	WHERE
		membership_id = :membership_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMembership(mem)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified membership and its overrides from the
// database.
func (s *Store) QueryByID(ctx context.Context, membershipID uuid.UUID) (membershipbus.Membership, error) {
	data := struct {
		ID string `db:"membership_id"`
	}{
		ID: membershipID.String(),
	}

	const q = `
	SELECT
		membership_id, workspace_id, user_id, role_id, active, created_at, updated_at
	FROM
		"public"."workspace_membership"
	WHERE
		membership_id = :membership_id`

	var dbMem membershipDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbMem); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return membershipbus.Membership{}, fmt.Errorf("db: %w", membershipbus.ErrNotFound)
		}
		return membershipbus.Membership{}, fmt.Errorf("db: %w", err)
	}

	dbOvrs, err := s.queryOverrides(ctx, dbMem.ID)
	if err != nil {
		return membershipbus.Membership{}, err
	}

	return toBusMembership(dbMem, dbOvrs)
}

// QueryByWorkspace gets the memberships and overrides for the workspace.
func (s *Store) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]membershipbus.Membership, error) {
	data := struct {
		ID string `db:"workspace_id"`
	}{
		ID: workspaceID.String(),
	}

	const q = `
	SELECT
		membership_id, workspace_id, user_id, role_id, active, created_at, updated_at
	FROM
		"public"."workspace_membership"
	WHERE
		workspace_id = :workspace_id
	ORDER BY
		created_at`

	var dbMems []membershipDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbMems); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	const qo = `
	SELECT
		mo.membership_id, mo.code, mo.scope, mo.allow
	FROM
		"public"."member_override" AS mo
	JOIN
		"public"."workspace_membership" AS wm ON wm.membership_id = mo.membership_id
	WHERE
		wm.workspace_id = :workspace_id
	ORDER BY
		mo.code`

	var dbOvrs []overrideDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qo, data, &dbOvrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMemberships(dbMems, dbOvrs)
}

// QueryByUserWorkspace gets the membership tying the user to the workspace.
func (s *Store) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (membershipbus.Membership, error) {
	data := struct {
		UserID      string `db:"user_id"`
		WorkspaceID string `db:"workspace_id"`
	}{
		UserID:      userID.String(),
		WorkspaceID: workspaceID.String(),
	}

	const q = `
	SELECT
		membership_id, workspace_id, user_id, role_id, active, created_at, updated_at
	FROM
		"public"."workspace_membership"
	WHERE
		user_id = :user_id AND workspace_id = :workspace_id`

	var dbMem membershipDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbMem); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return membershipbus.Membership{}, fmt.Errorf("db: %w", membershipbus.ErrNotFound)
		}
		return membershipbus.Membership{}, fmt.Errorf("db: %w", err)
	}

	dbOvrs, err := s.queryOverrides(ctx, dbMem.ID)
	if err != nil {
		return membershipbus.Membership{}, err
	}

	return toBusMembership(dbMem, dbOvrs)
}

// CountActiveByWorkspace returns the number of active members.
func (s *Store) CountActiveByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	data := struct {
		ID string `db:"workspace_id"`
	}{
		ID: workspaceID.String(),
	}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."workspace_membership"
	WHERE
		workspace_id = :workspace_id AND active`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// UpsertOverride adds or replaces an override for the membership.
func (s *Store) UpsertOverride(ctx context.Context, membershipID uuid.UUID, ovr membershipbus.Override) error {
	const q = `
	INSERT INTO "public"."member_override"
		(membership_id, code, scope, allow)
	VALUES
		(:membership_id, :code, :scope, :allow)
	ON CONFLICT ON CONSTRAINT uq_override_membership_code DO UPDATE SET
		scope = :scope,
		allow = :allow`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBOverride(membershipID, ovr)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// DeleteOverride removes an override from the membership.
func (s *Store) DeleteOverride(ctx context.Context, membershipID uuid.UUID, code permission.Code) error {
	data := struct {
		ID   string `db:"membership_id"`
		Code string `db:"code"`
	}{
		ID:   membershipID.String(),
		Code: code.String(),
	}

	const q = `
	DELETE FROM
		"public"."member_override"
	WHERE
		membership_id = :membership_id AND code = :code`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

func (s *Store) queryOverrides(ctx context.Context, membershipID uuid.UUID) ([]overrideDB, error) {
	data := struct {
		ID string `db:"membership_id"`
	}{
		ID: membershipID.String(),
	}

	const q = `
	SELECT
		membership_id, code, scope, allow
	FROM
		"public"."member_override"
	WHERE
		membership_id = :membership_id
	ORDER BY
		code`

	var dbOvrs []overrideDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbOvrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return dbOvrs, nil
}
