package userbus

import (
	"net/mail"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/phone"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/role"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/google/uuid"
)

// User represents a user profile scoped to a tenant. Credentials live in the
// credential domain, not here.
type User struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	Name             name.Name
	Username         username.Username
	Email            mail.Address
	Phone            phone.Null
	JobTitle         name.Null
	Locale           string
	MarketingConsent bool
	Role             role.Role
	Enabled          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	TenantID         uuid.UUID
	Name             name.Name
	Username         username.Username
	Email            mail.Address
	Phone            phone.Null
	JobTitle         name.Null
	Locale           string
	MarketingConsent bool
	Role             role.Role
}

// UpdateUser contains information needed to update a user.
type UpdateUser struct {
	Name             *name.Name
	Email            *mail.Address
	Phone            *phone.Null
	JobTitle         *name.Null
	Locale           *string
	MarketingConsent *bool
	Role             *role.Role
	Enabled          *bool
}
