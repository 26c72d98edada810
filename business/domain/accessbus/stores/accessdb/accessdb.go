// Package accessdb loads grant material for access decisions.
package accessdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
)

// Store manages the set of APIs for access database access.
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

// QueryByUserWorkspace loads the role grants and overrides for the user's
// active membership in the workspace. Deleted workspaces and inactive
// memberships both come back as accessbus.ErrNoMembership.
func (s *Store) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (accessbus.MemberGrants, error) {
	data := struct {
		UserID      string `db:"user_id"`
		WorkspaceID string `db:"workspace_id"`
	}{
		UserID:      userID.String(),
		WorkspaceID: workspaceID.String(),
	}

	const qm = `
	SELECT
		wm.membership_id
	FROM
		"public"."workspace_membership" AS wm
	JOIN
		"public"."workspace" AS w ON w.workspace_id = wm.workspace_id
	WHERE
		wm.user_id = :user_id AND wm.workspace_id = :workspace_id
		AND wm.active AND w.deleted_at IS NULL`

	var dbMem struct {
		ID uuid.UUID `db:"membership_id"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, qm, data, &dbMem); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return accessbus.MemberGrants{}, accessbus.ErrNoMembership
		}
		return accessbus.MemberGrants{}, fmt.Errorf("db: %w", err)
	}

	const qg = `
	SELECT
		rp.code, rp.scope
	FROM
		"public"."role_permission" AS rp
	JOIN
		"public"."workspace_membership" AS wm ON wm.role_id = rp.role_id
	WHERE
		wm.user_id = :user_id AND wm.workspace_id = :workspace_id AND wm.active
	ORDER BY
		rp.code`

	var dbGrants []grantDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qg, data, &dbGrants); err != nil {
		return accessbus.MemberGrants{}, fmt.Errorf("namedqueryslice: %w", err)
	}

	const qo = `
	SELECT
		mo.code, mo.scope, mo.allow
	FROM
		"public"."member_override" AS mo
	JOIN
		"public"."workspace_membership" AS wm ON wm.membership_id = mo.membership_id
	WHERE
		wm.user_id = :user_id AND wm.workspace_id = :workspace_id AND wm.active
	ORDER BY
		mo.code`

	var dbOvrs []overrideDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qo, data, &dbOvrs); err != nil {
		return accessbus.MemberGrants{}, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMemberGrants(dbGrants, dbOvrs)
}
