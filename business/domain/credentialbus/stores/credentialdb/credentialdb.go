// Package credentialdb contains credential related CRUD functionality.
package credentialdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for credential database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (credentialbus.Storer, error) {
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

// Create inserts a new credential into the database.
func (s *Store) Create(ctx context.Context, cred credentialbus.Credential) error {
	const q = `
	INSERT INTO "public"."credentials"
		(credential_id, user_id, tenant_id, password_hash, created_at, updated_at)
	VALUES
		(:credential_id, :user_id, :tenant_id, :password_hash, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCredential(cred)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", credentialbus.ErrUniqueUser)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a credential document in the database.
func (s *Store) Update(ctx context.Context, cred credentialbus.Credential) error {
	const q = `
	UPDATE
		"public"."credentials"
	SET
		password_hash = :password_hash,
		updated_at = :updated_at
	WHERE
		credential_id = :credential_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCredential(cred)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a credential from the database.
func (s *Store) Delete(ctx context.Context, cred credentialbus.Credential) error {
	const q = `
	DELETE FROM
		"public"."credentials"
	WHERE
		credential_id = :credential_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCredential(cred)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByUserID gets the credential for the specified user from the database.
func (s *Store) QueryByUserID(ctx context.Context, userID uuid.UUID) (credentialbus.Credential, error) {
	data := struct {
		ID string `db:"user_id"`
	}{
		ID: userID.String(),
	}

	const q = `
	SELECT
		credential_id, user_id, tenant_id, password_hash, created_at, updated_at
	FROM
		"public"."credentials"
	WHERE
		user_id = :user_id`

	var dbCred credentialDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCred); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return credentialbus.Credential{}, fmt.Errorf("db: %w", credentialbus.ErrNotFound)
		}
		return credentialbus.Credential{}, fmt.Errorf("db: %w", err)
	}

	return toBusCredential(dbCred), nil
}
