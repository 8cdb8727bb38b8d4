package userapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/phone"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/role"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/google/uuid"
)

// =============================================================================
// User (Output)
// =============================================================================

// User represents information about an individual user.
type User struct {
	ID               string `json:"id"`
	TenantID         string `json:"tenantId"`
	Name             string `json:"name"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	JobTitle         string `json:"jobTitle,omitempty"`
	Locale           string `json:"locale"`
	MarketingConsent bool   `json:"marketingConsent"`
	Role             string `json:"role"`
	Enabled          bool   `json:"enabled"`
	DateCreated      string `json:"dateCreated"`
	DateUpdated      string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (u User) Encode() ([]byte, string, error) {
	data, err := json.Marshal(u)
	return data, "application/json", err
}

func toAppUser(bus userbus.User) User {
	app := User{
		ID:               bus.ID.String(),
		TenantID:         bus.TenantID.String(),
		Name:             bus.Name.String(),
		Username:         bus.Username.String(),
		Email:            bus.Email.Address,
		Locale:           bus.Locale,
		MarketingConsent: bus.MarketingConsent,
		Role:             bus.Role.String(),
		Enabled:          bus.Enabled,
		DateCreated:      bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:      bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.Phone.Valid() {
		app.Phone = bus.Phone.String()
	}

	if bus.JobTitle.Valid() {
		app.JobTitle = bus.JobTitle.String()
	}

	return app
}

func toAppUsers(users []userbus.User) []User {
	app := make([]User, len(users))
	for i, usr := range users {
		app[i] = toAppUser(usr)
	}
	return app
}

// =============================================================================
// NewUser (Input)
// =============================================================================

// NewUser defines the data needed to add a new user to a tenant.
type NewUser struct {
	Name             string `json:"name" validate:"required"`
	Username         string `json:"username" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Role             string `json:"role" validate:"required"`
	Phone            string `json:"phone"`
	JobTitle         string `json:"jobTitle"`
	Locale           string `json:"locale"`
	MarketingConsent bool   `json:"marketingConsent"`
}

// Decode implements the web.Decoder interface.
func (app *NewUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewUser(app NewUser, tenantID uuid.UUID) (userbus.NewUser, error) {
	parsedRole, err := role.Parse(app.Role)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse role: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse name: %w", err)
	}

	uname, err := username.Parse(app.Username)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse username: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse phone: %w", err)
	}

	var jobTitle name.Null
	if app.JobTitle != "" {
		jobTitle, err = name.ParseNull(app.JobTitle)
		if err != nil {
			return userbus.NewUser{}, fmt.Errorf("parse job title: %w", err)
		}
	}

	bus := userbus.NewUser{
		TenantID:         tenantID,
		Name:             nme,
		Username:         uname,
		Email:            *addr,
		Phone:            ph,
		JobTitle:         jobTitle,
		Locale:           app.Locale,
		MarketingConsent: app.MarketingConsent,
		Role:             parsedRole,
	}

	return bus, nil
}

// =============================================================================
// UpdateUserRole (Input)
// =============================================================================

// UpdateUserRole defines the data needed to update a user role.
type UpdateUserRole struct {
	Role string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUserRole) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUserRole) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUserRole(app UpdateUserRole) (userbus.UpdateUser, error) {
	r, err := role.Parse(app.Role)
	if err != nil {
		return userbus.UpdateUser{}, fmt.Errorf("parse role: %w", err)
	}

	bus := userbus.UpdateUser{
		Role: &r,
	}

	return bus, nil
}

// =============================================================================
// UpdateUser (Input)
// =============================================================================

// UpdateUser defines the data needed to update a user.
type UpdateUser struct {
	Name             *string `json:"name"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone"`
	JobTitle         *string `json:"jobTitle"`
	Locale           *string `json:"locale"`
	MarketingConsent *bool   `json:"marketingConsent"`
	Enabled          *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUser(app UpdateUser) (userbus.UpdateUser, error) {
	var addr *mail.Address
	if app.Email != nil {
		var err error
		addr, err = mail.ParseAddress(*app.Email)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse email: %w", err)
		}
	}

	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var ph *phone.Null
	if app.Phone != nil {
		p, err := phone.ParseNull(*app.Phone)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse phone: %w", err)
		}
		ph = &p
	}

	var jobTitle *name.Null
	if app.JobTitle != nil {
		jt, err := name.ParseNull(*app.JobTitle)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse job title: %w", err)
		}
		jobTitle = &jt
	}

	bus := userbus.UpdateUser{
		Name:             nme,
		Email:            addr,
		Phone:            ph,
		JobTitle:         jobTitle,
		Locale:           app.Locale,
		MarketingConsent: app.MarketingConsent,
		Enabled:          app.Enabled,
	}

	return bus, nil
}
