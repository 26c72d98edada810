package invitedb

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/invitebus"
)

type inviteDB struct {
	ID          uuid.UUID     `db:"invite_id"`
	WorkspaceID uuid.UUID     `db:"workspace_id"`
	Email       string        `db:"email"`
	RoleID      uuid.NullUUID `db:"role_id"`
	Token       string        `db:"token"`
	Accepted    bool          `db:"accepted"`
	AcceptedAt  *time.Time    `db:"accepted_at"`
	CreatedBy   uuid.UUID     `db:"created_by"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func toDBInvite(bus invitebus.Invite) inviteDB {
	db := inviteDB{
		ID:          bus.ID,
		WorkspaceID: bus.WorkspaceID,
		Email:       bus.Email.Address,
		Token:       bus.Token,
		Accepted:    bus.Accepted,
		AcceptedAt:  bus.AcceptedAt,
		CreatedBy:   bus.CreatedBy,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	if bus.RoleID != nil {
		db.RoleID = uuid.NullUUID{UUID: *bus.RoleID, Valid: true}
	}

	return db
}

func toBusInvite(db inviteDB) invitebus.Invite {
	bus := invitebus.Invite{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Email:       mail.Address{Address: db.Email},
		Token:       db.Token,
		Accepted:    db.Accepted,
		AcceptedAt:  db.AcceptedAt,
		CreatedBy:   db.CreatedBy,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	if db.RoleID.Valid {
		id := db.RoleID.UUID
		bus.RoleID = &id
	}

	return bus
}

func toBusInvites(dbs []inviteDB) []invitebus.Invite {
	bus := make([]invitebus.Invite, len(dbs))
	for i, db := range dbs {
		bus[i] = toBusInvite(db)
	}

	return bus
}
