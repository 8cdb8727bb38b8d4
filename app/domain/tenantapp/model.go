package tenantapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
)

// Tenant represents information about an individual tenant.
type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Subdomain   string `json:"subdomain"`
	Plan        string `json:"plan"`
	Enabled     bool   `json:"enabled"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (t Tenant) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppTenant(bus tenantbus.Tenant) Tenant {
	return Tenant{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Subdomain:   bus.Subdomain.String(),
		Plan:        bus.Plan.String(),
		Enabled:     bus.Enabled,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================

// UpdateTenant defines the data needed to update a tenant.
type UpdateTenant struct {
	Name    *string `json:"name"`
	Plan    *string `json:"plan"`
	Enabled *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateTenant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateTenant(app UpdateTenant) (tenantbus.UpdateTenant, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var pln *plan.Plan
	if app.Plan != nil {
		p, err := plan.Parse(*app.Plan)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse plan: %w", err)
		}
		pln = &p
	}

	bus := tenantbus.UpdateTenant{
		Name:    nme,
		Plan:    pln,
		Enabled: app.Enabled,
	}

	return bus, nil
}

// =============================================================================

// Availability reports whether a subdomain can still be claimed.
type Availability struct {
	Subdomain string `json:"subdomain"`
	Available bool   `json:"available"`
}

// Encode implements the web.Encoder interface.
func (a Availability) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}
