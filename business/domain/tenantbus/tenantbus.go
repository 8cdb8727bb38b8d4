// Package tenantbus provides business access to tenant domain.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/otel"
	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("tenant not found")
	ErrUniqueSubdomain = errors.New("subdomain is not unique")
)

// Storer defines the behavior required by the tenantbus to interact with the
// database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)

	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	Delete(ctx context.Context, t Tenant) error
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (Tenant, error)
	ExistsBySubdomain(ctx context.Context, sub subdomain.Subdomain) (bool, error)
}

// Core manages the set of APIs for tenant access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for tenant api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new tenant to the system.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	now := time.Now()

	t := Tenant{
		ID:        uuid.New(),
		Name:      nt.Name,
		Subdomain: nt.Subdomain,
		Plan:      nt.Plan,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// Update modifies data about a tenant.
func (c *Core) Update(ctx context.Context, t Tenant, ut UpdateTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.update")
	defer span.End()

	if ut.Name != nil {
		t.Name = *ut.Name
	}

	if ut.Plan != nil {
		t.Plan = *ut.Plan
	}

	if ut.Enabled != nil {
		t.Enabled = *ut.Enabled
	}

	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// Delete removes the specified tenant from the system.
func (c *Core) Delete(ctx context.Context, t Tenant) error {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, t); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	tenant, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return tenant, nil
}

// QueryBySubdomain finds the tenant owning the specified subdomain.
func (c *Core) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryBySubdomain")
	defer span.End()

	tenant, err := c.storer.QueryBySubdomain(ctx, sub)
	if err != nil {
		return Tenant{}, fmt.Errorf("query by subdomain[%s]: %w", sub, err)
	}

	return tenant, nil
}

// SubdomainAvailable reports whether the specified subdomain has not been
// claimed by any tenant.
func (c *Core) SubdomainAvailable(ctx context.Context, sub subdomain.Subdomain) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.subdomainAvailable")
	defer span.End()

	exists, err := c.storer.ExistsBySubdomain(ctx, sub)
	if err != nil {
		return false, fmt.Errorf("exists by subdomain[%s]: %w", sub, err)
	}

	return !exists, nil
}
