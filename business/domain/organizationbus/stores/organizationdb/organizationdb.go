// Package organizationdb contains organization related CRUD functionality.
package organizationdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/planora/planora/business/domain/organizationbus"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
)

// Store manages the set of APIs for organization database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (organizationbus.Storer, error) {
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

// Create inserts a new organization into the database.
func (s *Store) Create(ctx context.Context, org organizationbus.Organization) error {
	dbOrg, err := toDBOrganization(org)
	if err != nil {
		return err
	}

	const q = `
	INSERT INTO "public"."organization"
		(organization_id, name, brand, created_at, updated_at)
	VALUES
		(:organization_id, :name, :brand, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbOrg); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces an organization document in the database.
func (s *Store) Update(ctx context.Context, org organizationbus.Organization) error {
	dbOrg, err := toDBOrganization(org)
	if err != nil {
		return err
	}

	const q = `
	UPDATE
		"public"."organization"
	SET
		name = :name,
		brand = :brand,
		updated_at = :updated_at
	WHERE
		organization_id = :organization_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbOrg); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes an organization from the database.
func (s *Store) Delete(ctx context.Context, org organizationbus.Organization) error {
	data := struct {
		ID string `db:"organization_id"`
	}{
		ID: org.ID.String(),
	}

	const q = `
	DELETE FROM
		"public"."organization"
	WHERE
		organization_id = :organization_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified organization from the database.
func (s *Store) QueryByID(ctx context.Context, organizationID uuid.UUID) (organizationbus.Organization, error) {
	data := struct {
		ID string `db:"organization_id"`
	}{
		ID: organizationID.String(),
	}

	const q = `
	SELECT
		organization_id, name, brand, created_at, updated_at
	FROM
		"public"."organization"
	WHERE
		organization_id = :organization_id`

	var dbOrg organizationDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbOrg); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return organizationbus.Organization{}, fmt.Errorf("db: %w", organizationbus.ErrNotFound)
		}
		return organizationbus.Organization{}, fmt.Errorf("db: %w", err)
	}

	return toBusOrganization(dbOrg)
}
