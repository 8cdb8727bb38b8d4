package sqldb

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Beginner represents the ability to begin a transaction.
type Beginner interface {
	Begin() (CommitRollbacker, error)
}

// CommitRollbacker represents the ability to commit or rollback a
// transaction.
type CommitRollbacker interface {
	Commit() error
	Rollback() error
}

// =============================================================================

// DBBeginner implements the Beginner interface over a sqlx DB.
type DBBeginner struct {
	db *sqlx.DB
}

// NewBeginner constructs a value that implements the beginner interface.
func NewBeginner(db *sqlx.DB) *DBBeginner {
	return &DBBeginner{
		db: db,
	}
}

// Begin implements the Beginner interface and returns a concrete value that
// can commit or rollback a transaction.
func (db *DBBeginner) Begin() (CommitRollbacker, error) {
	return db.db.Beginx()
}

// GetExtContext is a helper function that extracts the sqlx value
// from the domain transactor interface for transactional use.
func GetExtContext(tx CommitRollbacker) (sqlx.ExtContext, error) {
	ec, ok := tx.(sqlx.ExtContext)
	if !ok {
		return nil, fmt.Errorf("Transactor(%T) not of a type *sqlx.Tx", tx)
	}

	return ec, nil
}
