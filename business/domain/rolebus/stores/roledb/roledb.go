// Package roledb contains workspace role related CRUD functionality.
package roledb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
)

// Store manages the set of APIs for role database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (rolebus.Storer, error) {
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

// Create inserts a new role and its grants into the database.
func (s *Store) Create(ctx context.Context, rl rolebus.Role) error {
	const q = `
	INSERT INTO "public"."workspace_role"
		(role_id, workspace_id, name, system, created_at, updated_at)
	VALUES
		(:role_id, :workspace_id, :name, :system, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRole(rl)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "uq_workspace_role_name" {
				return fmt.Errorf("namedexeccontext: %w", rolebus.ErrUniqueName)
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if err := s.insertPermissions(ctx, rl); err != nil {
		return err
	}

	return nil
}

// Update replaces a role and its grants in the database.
func (s *Store) Update(ctx context.Context, rl rolebus.Role) error {
	const q = `
	UPDATE
		"public"."workspace_role"
	SET
		name = :name,
		updated_at = :updated_at
	WHERE
		role_id = :role_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRole(rl)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			if dupErr.Column == "uq_workspace_role_name" {
				return rolebus.ErrUniqueName
			}
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	const qd = `
	DELETE FROM
		"public"."role_permission"
	WHERE
		role_id = :role_id`

	data := struct {
		ID string `db:"role_id"`
	}{
		ID: rl.ID.String(),
	}

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, qd, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if err := s.insertPermissions(ctx, rl); err != nil {
		return err
	}

	return nil
}

// Delete removes a role and its grants from the database.
func (s *Store) Delete(ctx context.Context, rl rolebus.Role) error {
	const q = `
	DELETE FROM
		"public"."workspace_role"
	WHERE
		role_id = :role_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRole(rl)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified role and its grants from the database.
func (s *Store) QueryByID(ctx context.Context, roleID uuid.UUID) (rolebus.Role, error) {
	data := struct {
		ID string `db:"role_id"`
	}{
		ID: roleID.String(),
	}

	const q = `
	SELECT
		role_id, workspace_id, name, system, created_at, updated_at
	FROM
		"public"."workspace_role"
	WHERE
		role_id = :role_id`

	var dbRl roleDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbRl); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return rolebus.Role{}, fmt.Errorf("db: %w", rolebus.ErrNotFound)
		}
		return rolebus.Role{}, fmt.Errorf("db: %w", err)
	}

	const qp = `
	SELECT
		role_id, code, scope
	FROM
		"public"."role_permission"
	WHERE
		role_id = :role_id
	ORDER BY
		code`

	var dbPerms []rolePermissionDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qp, data, &dbPerms); err != nil {
		return rolebus.Role{}, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusRole(dbRl, dbPerms)
}

// QueryByWorkspace gets the roles and their grants for the workspace.
func (s *Store) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]rolebus.Role, error) {
	data := struct {
		ID string `db:"workspace_id"`
	}{
		ID: workspaceID.String(),
	}

	const q = `
	SELECT
		role_id, workspace_id, name, system, created_at, updated_at
	FROM
		"public"."workspace_role"
	WHERE
		workspace_id = :workspace_id
	ORDER BY
		created_at`

	var dbRls []roleDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbRls); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	const qp = `
	SELECT
		rp.role_id, rp.code, rp.scope
	FROM
		"public"."role_permission" AS rp
	JOIN
		"public"."workspace_role" AS wr ON wr.role_id = rp.role_id
	WHERE
		wr.workspace_id = :workspace_id
	ORDER BY
		rp.code`

	var dbPerms []rolePermissionDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qp, data, &dbPerms); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusRoles(dbRls, dbPerms)
}

func (s *Store) insertPermissions(ctx context.Context, rl rolebus.Role) error {
	const q = `
	INSERT INTO "public"."role_permission"
		(role_id, code, scope)
	VALUES
		(:role_id, :code, :scope)`

	for _, perm := range toDBRolePermissions(rl) {
		if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, perm); err != nil {
			return fmt.Errorf("namedexeccontext: %w", err)
		}
	}

	return nil
}
