package tenantdb

import (
	"fmt"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/google/uuid"
)

type tenantDB struct {
	ID        uuid.UUID `db:"tenant_id"`
	Name      string    `db:"name"`
	Subdomain string    `db:"subdomain"`
	Plan      string    `db:"plan"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBTenant(bus tenantbus.Tenant) tenantDB {
	return tenantDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Subdomain: bus.Subdomain.String(),
		Plan:      bus.Plan.String(),
		Enabled:   bus.Enabled,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusTenant(db tenantDB) (tenantbus.Tenant, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse name: %w", err)
	}

	sub, err := subdomain.Parse(db.Subdomain)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse subdomain: %w", err)
	}

	pln, err := plan.Parse(db.Plan)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse plan: %w", err)
	}

	bus := tenantbus.Tenant{
		ID:        db.ID,
		Name:      nme,
		Subdomain: sub,
		Plan:      pln,
		Enabled:   db.Enabled,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}
