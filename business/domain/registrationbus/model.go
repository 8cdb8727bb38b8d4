package registrationbus

import (
	"net/mail"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/phone"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/google/uuid"
)

// NewRegistration contains the information needed to register a new
// company with its first user and login credential.
type NewRegistration struct {
	Email            mail.Address
	Username         username.Username
	Password         password.Password
	CompanyName      name.Name
	Name             name.Name
	Phone            phone.Null
	JobTitle         name.Null
	Locale           string
	MarketingConsent bool
	Plan             plan.Plan
}

// DedupKey identifies a registration for in-flight deduplication. At
// most one execution may hold a given key at a time.
func (nr NewRegistration) DedupKey() string {
	return nr.Email.Address + "|" + nr.CompanyName.String()
}

// Registration is the aggregate result of a completed registration.
type Registration struct {
	Tenant     DirectoryTenant
	User       DirectoryUser
	Credential DirectoryCredential
}

// =============================================================================

// NewDirectoryTenant is the payload for tenant creation in the tenant
// directory.
type NewDirectoryTenant struct {
	Name      name.Name
	Subdomain subdomain.Subdomain
	Plan      plan.Plan
}

// DirectoryTenant is the record the tenant directory reports back. The
// orchestrator treats it as opaque beyond the id and accepted subdomain.
type DirectoryTenant struct {
	ID        uuid.UUID
	Subdomain subdomain.Subdomain
}

// NewDirectoryUser is the payload for user profile creation in the user
// directory.
type NewDirectoryUser struct {
	TenantID         uuid.UUID
	Name             name.Name
	Username         username.Username
	Email            mail.Address
	Phone            phone.Null
	JobTitle         name.Null
	Locale           string
	MarketingConsent bool
}

// DirectoryUser is the record the user directory reports back.
type DirectoryUser struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Username username.Username
	Email    mail.Address
}

// NewDirectoryCredential is the payload for credential creation in the
// credential store.
type NewDirectoryCredential struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Password password.Password
}

// DirectoryCredential is the record the credential store reports back.
type DirectoryCredential struct {
	ID     uuid.UUID
	UserID uuid.UUID
}
