package registrationapp

import (
	"encoding/json"
	"fmt"
	"net/mail"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/phone"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
)

// NewRegistration defines the data needed to register a company.
type NewRegistration struct {
	Email            string `json:"email" validate:"required,email"`
	Username         string `json:"username" validate:"required"`
	Password         string `json:"password" validate:"required"`
	PasswordConfirm  string `json:"passwordConfirm" validate:"eqfield=Password"`
	CompanyName      string `json:"companyName" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Phone            string `json:"phone"`
	JobTitle         string `json:"jobTitle"`
	Locale           string `json:"locale"`
	MarketingConsent bool   `json:"marketingConsent"`
	Plan             string `json:"plan"`
}

// Decode implements the web.Decoder interface.
func (app *NewRegistration) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewRegistration) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewRegistration(app NewRegistration) (registrationbus.NewRegistration, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return registrationbus.NewRegistration{}, fmt.Errorf("parse email: %w", err)
	}

	uname, err := username.Parse(app.Username)
	if err != nil {
		return registrationbus.NewRegistration{}, fmt.Errorf("parse username: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return registrationbus.NewRegistration{}, fmt.Errorf("parse password: %w", err)
	}

	companyName, err := name.Parse(app.CompanyName)
	if err != nil {
		return registrationbus.NewRegistration{}, fmt.Errorf("parse company name: %w", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		return registrationbus.NewRegistration{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return registrationbus.NewRegistration{}, fmt.Errorf("parse phone: %w", err)
	}

	var jobTitle name.Null
	if app.JobTitle != "" {
		jobTitle, err = name.ParseNull(app.JobTitle)
		if err != nil {
			return registrationbus.NewRegistration{}, fmt.Errorf("parse job title: %w", err)
		}
	}

	pln := plan.Trial
	if app.Plan != "" {
		pln, err = plan.Parse(app.Plan)
		if err != nil {
			return registrationbus.NewRegistration{}, fmt.Errorf("parse plan: %w", err)
		}
	}

	bus := registrationbus.NewRegistration{
		Email:            *addr,
		Username:         uname,
		Password:         pass,
		CompanyName:      companyName,
		Name:             nme,
		Phone:            ph,
		JobTitle:         jobTitle,
		Locale:           app.Locale,
		MarketingConsent: app.MarketingConsent,
		Plan:             pln,
	}

	return bus, nil
}

// =============================================================================

// Registration represents the result of a completed registration.
type Registration struct {
	TenantID     string `json:"tenantId"`
	Subdomain    string `json:"subdomain"`
	UserID       string `json:"userId"`
	CredentialID string `json:"credentialId"`
	Message      string `json:"message"`
}

// Encode implements the web.Encoder interface.
func (app Registration) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppRegistration(bus registrationbus.Registration) Registration {
	return Registration{
		TenantID:     bus.Tenant.ID.String(),
		Subdomain:    bus.Tenant.Subdomain.String(),
		UserID:       bus.User.ID.String(),
		CredentialID: bus.Credential.ID.String(),
		Message:      "registration complete",
	}
}
