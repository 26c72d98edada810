package workspacedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/workspacebus"
	"github.com/planora/planora/business/types/name"
)

type workspaceDB struct {
	ID             uuid.UUID      `db:"workspace_id"`
	Name           string         `db:"name"`
	OwnerID        uuid.UUID      `db:"owner_id"`
	OrganizationID uuid.NullUUID  `db:"organization_id"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

func toDBWorkspace(bus workspacebus.Workspace) workspaceDB {
	db := workspaceDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		OwnerID:   bus.OwnerID,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
		DeletedAt: bus.DeletedAt,
	}

	if bus.OrganizationID != nil {
		db.OrganizationID = uuid.NullUUID{UUID: *bus.OrganizationID, Valid: true}
	}

	return db
}

func toBusWorkspace(db workspaceDB) (workspacebus.Workspace, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return workspacebus.Workspace{}, fmt.Errorf("parse name: %w", err)
	}

	bus := workspacebus.Workspace{
		ID:        db.ID,
		Name:      nme,
		OwnerID:   db.OwnerID,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
		DeletedAt: db.DeletedAt,
	}

	if db.OrganizationID.Valid {
		id := db.OrganizationID.UUID
		bus.OrganizationID = &id
	}

	return bus, nil
}

func toBusWorkspaces(dbs []workspaceDB) ([]workspacebus.Workspace, error) {
	bus := make([]workspacebus.Workspace, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusWorkspace(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
