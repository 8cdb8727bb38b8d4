// Package directorybus adapts the in-process domain cores to the
// directory interfaces the registration orchestrator consumes. This is
// the wiring for the monolith deployment, where all three services
// live in this binary.
package directorybus

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/role"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
)

// TenantDirectory provides tenant capabilities over the tenant core.
type TenantDirectory struct {
	tenantBus *tenantbus.Core
}

// NewTenantDirectory constructs a tenant directory over the core.
func NewTenantDirectory(tenantBus *tenantbus.Core) *TenantDirectory {
	return &TenantDirectory{
		tenantBus: tenantBus,
	}
}

// CreateTenant creates a tenant, translating a subdomain uniqueness
// rejection into a dependency conflict.
func (d *TenantDirectory) CreateTenant(ctx context.Context, ndt registrationbus.NewDirectoryTenant) (registrationbus.DirectoryTenant, error) {
	tnt, err := d.tenantBus.Create(ctx, tenantbus.NewTenant{
		Name:      ndt.Name,
		Subdomain: ndt.Subdomain,
		Plan:      ndt.Plan,
	})
	if err != nil {
		if errors.Is(err, tenantbus.ErrUniqueSubdomain) {
			return registrationbus.DirectoryTenant{}, fmt.Errorf("create: subdomain[%s]: %w", ndt.Subdomain, registrationbus.ErrDependencyConflict)
		}
		return registrationbus.DirectoryTenant{}, fmt.Errorf("create: %w", err)
	}

	return registrationbus.DirectoryTenant{
		ID:        tnt.ID,
		Subdomain: tnt.Subdomain,
	}, nil
}

// SubdomainAvailable reports whether no tenant holds the subdomain.
func (d *TenantDirectory) SubdomainAvailable(ctx context.Context, sub subdomain.Subdomain) (bool, error) {
	return d.tenantBus.SubdomainAvailable(ctx, sub)
}

// =============================================================================

// UserDirectory provides user profile capabilities over the user core.
type UserDirectory struct {
	userBus *userbus.Core
}

// NewUserDirectory constructs a user directory over the core.
func NewUserDirectory(userBus *userbus.Core) *UserDirectory {
	return &UserDirectory{
		userBus: userBus,
	}
}

// CreateUser creates the first user of a tenant with the owner role.
func (d *UserDirectory) CreateUser(ctx context.Context, ndu registrationbus.NewDirectoryUser) (registrationbus.DirectoryUser, error) {
	usr, err := d.userBus.Create(ctx, userbus.NewUser{
		TenantID:         ndu.TenantID,
		Name:             ndu.Name,
		Username:         ndu.Username,
		Email:            ndu.Email,
		Phone:            ndu.Phone,
		JobTitle:         ndu.JobTitle,
		Locale:           ndu.Locale,
		MarketingConsent: ndu.MarketingConsent,
		Role:             role.Owner,
	})
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) || errors.Is(err, userbus.ErrUniqueUsername) {
			return registrationbus.DirectoryUser{}, fmt.Errorf("create: %w", registrationbus.ErrDependencyConflict)
		}
		return registrationbus.DirectoryUser{}, fmt.Errorf("create: %w", err)
	}

	return toDirectoryUser(usr), nil
}

// QueryByUsername finds a user by username.
func (d *UserDirectory) QueryByUsername(ctx context.Context, uname username.Username) (registrationbus.DirectoryUser, error) {
	usr, err := d.userBus.QueryByUsername(ctx, uname)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return registrationbus.DirectoryUser{}, registrationbus.ErrDirectoryUserNotFound
		}
		return registrationbus.DirectoryUser{}, fmt.Errorf("query: %w", err)
	}

	return toDirectoryUser(usr), nil
}

// QueryByEmail finds a user by email.
func (d *UserDirectory) QueryByEmail(ctx context.Context, email mail.Address) (registrationbus.DirectoryUser, error) {
	usr, err := d.userBus.QueryByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return registrationbus.DirectoryUser{}, registrationbus.ErrDirectoryUserNotFound
		}
		return registrationbus.DirectoryUser{}, fmt.Errorf("query: %w", err)
	}

	return toDirectoryUser(usr), nil
}

func toDirectoryUser(usr userbus.User) registrationbus.DirectoryUser {
	return registrationbus.DirectoryUser{
		ID:       usr.ID,
		TenantID: usr.TenantID,
		Username: usr.Username,
		Email:    usr.Email,
	}
}

// =============================================================================

// CredentialStore provides credential capabilities over the credential
// core.
type CredentialStore struct {
	credentialBus *credentialbus.Core
}

// NewCredentialStore constructs a credential store over the core.
func NewCredentialStore(credentialBus *credentialbus.Core) *CredentialStore {
	return &CredentialStore{
		credentialBus: credentialBus,
	}
}

// CreateCredentials stores the login credential for a new user.
func (d *CredentialStore) CreateCredentials(ctx context.Context, ndc registrationbus.NewDirectoryCredential) (registrationbus.DirectoryCredential, error) {
	cred, err := d.credentialBus.Create(ctx, credentialbus.NewCredential{
		UserID:   ndc.UserID,
		TenantID: ndc.TenantID,
		Password: ndc.Password,
	})
	if err != nil {
		if errors.Is(err, credentialbus.ErrUniqueUser) {
			return registrationbus.DirectoryCredential{}, fmt.Errorf("create: %w", registrationbus.ErrDependencyConflict)
		}
		return registrationbus.DirectoryCredential{}, fmt.Errorf("create: %w", err)
	}

	return registrationbus.DirectoryCredential{
		ID:     cred.ID,
		UserID: cred.UserID,
	}, nil
}
