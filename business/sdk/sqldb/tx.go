package sqldb

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CommitRollbacker interface represents the transaction support needed by
// the business layer to atomically apply a set of changes.
type CommitRollbacker interface {
	Commit() error
	Rollback() error
}

// Beginner interface represents the ability to start a transaction.
type Beginner interface {
	Begin() (CommitRollbacker, error)
}

type dbBeginner struct {
	sqlxDB *sqlx.DB
}

// NewBeginner constructs a value that implements the beginner interface.
func NewBeginner(sqlxDB *sqlx.DB) Beginner {
	return &dbBeginner{
		sqlxDB: sqlxDB,
	}
}

// Begin starts a transaction against the underlying database.
func (db *dbBeginner) Begin() (CommitRollbacker, error) {
	return db.sqlxDB.Beginx()
}

// GetExtContext is a helper function that extracts the sqlx value
// from the domain transactor interface for transactional use.
func GetExtContext(tx CommitRollbacker) (sqlx.ExtContext, error) {
	ec, ok := tx.(sqlx.ExtContext)
	if !ok {
		return nil, fmt.Errorf("CommitRollbacker not of a type *sqlx.Tx: %T", tx)
	}

	return ec, nil
}
