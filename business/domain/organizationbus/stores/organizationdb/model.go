package organizationdb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/organizationbus"
	"github.com/planora/planora/business/types/name"
)

type organizationDB struct {
	ID        uuid.UUID `db:"organization_id"`
	Name      string    `db:"name"`
	Brand     []byte    `db:"brand"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBOrganization(bus organizationbus.Organization) (organizationDB, error) {
	brand, err := json.Marshal(bus.Brand)
	if err != nil {
		return organizationDB{}, fmt.Errorf("marshal brand: %w", err)
	}

	return organizationDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Brand:     brand,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}, nil
}

func toBusOrganization(db organizationDB) (organizationbus.Organization, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return organizationbus.Organization{}, fmt.Errorf("parse name: %w", err)
	}

	var brand organizationbus.Brand
	if len(db.Brand) > 0 {
		if err := json.Unmarshal(db.Brand, &brand); err != nil {
			return organizationbus.Organization{}, fmt.Errorf("unmarshal brand: %w", err)
		}
	}

	return organizationbus.Organization{
		ID:        db.ID,
		Name:      nme,
		Brand:     brand,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}, nil
}
