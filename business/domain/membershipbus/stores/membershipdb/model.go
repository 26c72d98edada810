package membershipdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/types/permission"
)

type membershipDB struct {
	ID          uuid.UUID     `db:"membership_id"`
	WorkspaceID uuid.UUID     `db:"workspace_id"`
	UserID      uuid.UUID     `db:"user_id"`
	RoleID      uuid.NullUUID `db:"role_id"`
	Active      bool          `db:"active"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type overrideDB struct {
	MembershipID uuid.UUID `db:"membership_id"`
	Code         string    `db:"code"`
	Scope        string    `db:"scope"`
	Allow        bool      `db:"allow"`
}

func toDBMembership(bus membershipbus.Membership) membershipDB {
	db := membershipDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		UserID:      bus.UserID,
		Active:      bus.Active,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.RoleID != nil {
		db.RoleID = uuid.NullUUID{UUID: *bus.RoleID, Valid: true}
	}

	return db
}

func toDBOverride(membershipID uuid.UUID, bus membershipbus.Override) overrideDB {
	return overrideDB{
		MembershipID: membershipID,
		Code:         bus.Code.String(),
		Scope:        bus.Scope.String(),
		Allow:        bus.Allow,
	}
}

func toBusOverride(db overrideDB) (membershipbus.Override, error) {
	code, err := permission.ParseCode(db.Code)
	if err != nil {
		return membershipbus.Override{}, fmt.Errorf("parse code: %w", err)
	}

	scope, err := permission.ParseScope(db.Scope)
	if err != nil {
		return membershipbus.Override{}, fmt.Errorf("parse scope: %w", err)
	}

	return membershipbus.Override{Code: code, Scope: scope, Allow: db.Allow}, nil
}

func toBusMembership(db membershipDB, dbOvrs []overrideDB) (membershipbus.Membership, error) {
	ovrs := make([]membershipbus.Override, 0, len(dbOvrs))
	for _, dbOvr := range dbOvrs {
		if dbOvr.MembershipID != db.ID {
			continue
		}
		ovr, err := toBusOverride(dbOvr)
		if err != nil {
			return membershipbus.Membership{}, err
		}
		ovrs = append(ovrs, ovr)
	}

	bus := membershipbus.Membership{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		UserID:      db.UserID,
		Active:      db.Active,
		Overrides:   ovrs,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.RoleID.Valid {
		id := db.RoleID.UUID
		bus.RoleID = &id
	}

	return bus, nil
}

func toBusMemberships(dbs []membershipDB, dbOvrs []overrideDB) ([]membershipbus.Membership, error) {
	bus := make([]membershipbus.Membership, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusMembership(db, dbOvrs)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
