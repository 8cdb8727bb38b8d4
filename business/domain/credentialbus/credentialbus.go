// Package credentialbus provides business access to login credential domain.
package credentialbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/otel"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound              = errors.New("credential not found")
	ErrUniqueUser            = errors.New("user already has a credential")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cred Credential) error
	Update(ctx context.Context, cred Credential) error
	Delete(ctx context.Context, cred Credential) error
	QueryByUserID(ctx context.Context, userID uuid.UUID) (Credential, error)
}

type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

func (c *Core) Create(ctx context.Context, nc NewCredential) (Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.create")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(nc.Password.String()), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	now := time.Now()

	cred := Credential{
		ID:           uuid.New(),
		UserID:       nc.UserID,
		TenantID:     nc.TenantID,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storer.Create(ctx, cred); err != nil {
		return Credential{}, fmt.Errorf("create: %w", err)
	}

	return cred, nil
}

// Update rotates the password for an existing credential.
func (c *Core) Update(ctx context.Context, cred Credential, uc UpdateCredential) (Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.update")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(uc.Password.String()), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	cred.PasswordHash = hash
	cred.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cred); err != nil {
		return Credential{}, fmt.Errorf("update: %w", err)
	}

	return cred, nil
}

func (c *Core) Delete(ctx context.Context, cred Credential) error {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, cred); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByUserID finds the credential for the specified user.
func (c *Core) QueryByUserID(ctx context.Context, userID uuid.UUID) (Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.querybyuserid")
	defer span.End()

	cred, err := c.storer.QueryByUserID(ctx, userID)
	if err != nil {
		return Credential{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return cred, nil
}

// Authenticate compares the provided password against the stored hash
// for the specified user. It returns ErrAuthenticationFailure when the
// password does not match or no credential exists.
func (c *Core) Authenticate(ctx context.Context, userID uuid.UUID, pass password.Password) (Credential, error) {
	ctx, span := otel.AddSpan(ctx, "business.credentialbus.authenticate")
	defer span.End()

	cred, err := c.storer.QueryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Credential{}, ErrAuthenticationFailure
		}
		return Credential{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	if err := bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(pass.String())); err != nil {
		return Credential{}, ErrAuthenticationFailure
	}

	return cred, nil
}
