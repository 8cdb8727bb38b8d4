package tenantbus

import (
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/google/uuid"
)

// Tenant represents a client organization or workspace in the system.
type Tenant struct {
	ID        uuid.UUID
	Name      name.Name
	Subdomain subdomain.Subdomain
	Plan      plan.Plan
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTenant contains information needed to create a new tenant.
type NewTenant struct {
	Name      name.Name
	Subdomain subdomain.Subdomain
	Plan      plan.Plan
}

// UpdateTenant contains information needed to update a tenant.
type UpdateTenant struct {
	Name    *name.Name
	Plan    *plan.Plan
	Enabled *bool
}
