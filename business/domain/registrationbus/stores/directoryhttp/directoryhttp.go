// Package directoryhttp provides directory clients over HTTP for
// deployments where the tenant, user, and credential services run as
// separate processes. The clients do not retry, the orchestrator owns
// all retry policy.
package directoryhttp

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// Config carries the settings for constructing directory clients.
type Config struct {
	TenantHost     string
	UserHost       string
	CredentialHost string
	Timeout        time.Duration
	APIToken       string
}

func newClient(host string, cfg Config) *resty.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(host).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.APIToken != "" {
		client.SetAuthToken(cfg.APIToken)
	}

	return client
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusErr maps a non-2xx directory response to the orchestrator's
// error taxonomy.
func statusErr(resp *resty.Response) error {
	var msg string
	if er, ok := resp.Error().(*errorResponse); ok && er != nil {
		msg = er.Error
	}

	switch resp.StatusCode() {
	case http.StatusConflict:
		return fmt.Errorf("status[%d] %s: %w", resp.StatusCode(), msg, registrationbus.ErrDependencyConflict)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("status[%d] %s: %w", resp.StatusCode(), msg, registrationbus.ErrDependencyUnavailable)
	default:
		return fmt.Errorf("status[%d]: %s", resp.StatusCode(), msg)
	}
}

// =============================================================================

// TenantDirectory is an HTTP client for the tenant service.
type TenantDirectory struct {
	client *resty.Client
}

// NewTenantDirectory constructs a tenant directory client.
func NewTenantDirectory(cfg Config) *TenantDirectory {
	return &TenantDirectory{
		client: newClient(cfg.TenantHost, cfg),
	}
}

type newTenantRequest struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Plan      string `json:"plan"`
}

type tenantResponse struct {
	ID        string `json:"id"`
	Subdomain string `json:"subdomain"`
}

// CreateTenant creates a tenant through the tenant service.
func (d *TenantDirectory) CreateTenant(ctx context.Context, ndt registrationbus.NewDirectoryTenant) (registrationbus.DirectoryTenant, error) {
	var result tenantResponse

	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(newTenantRequest{
			Name:      ndt.Name.String(),
			Subdomain: ndt.Subdomain.String(),
			Plan:      ndt.Plan.String(),
		}).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post("/v1/tenants")

	if err != nil {
		return registrationbus.DirectoryTenant{}, fmt.Errorf("post: %w: %w", registrationbus.ErrDependencyUnavailable, err)
	}

	if resp.IsError() {
		return registrationbus.DirectoryTenant{}, fmt.Errorf("create tenant: %w", statusErr(resp))
	}

	id, err := uuid.Parse(result.ID)
	if err != nil {
		return registrationbus.DirectoryTenant{}, fmt.Errorf("parse id: %w", err)
	}

	sub, err := subdomain.Parse(result.Subdomain)
	if err != nil {
		return registrationbus.DirectoryTenant{}, fmt.Errorf("parse subdomain: %w", err)
	}

	return registrationbus.DirectoryTenant{
		ID:        id,
		Subdomain: sub,
	}, nil
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// SubdomainAvailable asks the tenant service whether the subdomain is
// free.
func (d *TenantDirectory) SubdomainAvailable(ctx context.Context, sub subdomain.Subdomain) (bool, error) {
	var result availabilityResponse

	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParam("subdomain", sub.String()).
		SetResult(&result).
		SetError(&errorResponse{}).
		Get("/v1/tenants/availability")

	if err != nil {
		return false, fmt.Errorf("get: %w: %w", registrationbus.ErrDependencyUnavailable, err)
	}

	if resp.IsError() {
		return false, fmt.Errorf("availability: %w", statusErr(resp))
	}

	return result.Available, nil
}

// =============================================================================

// UserDirectory is an HTTP client for the user service.
type UserDirectory struct {
	client *resty.Client
}

// NewUserDirectory constructs a user directory client.
func NewUserDirectory(cfg Config) *UserDirectory {
	return &UserDirectory{
		client: newClient(cfg.UserHost, cfg),
	}
}

type newUserRequest struct {
	TenantID         string `json:"tenantId"`
	Name             string `json:"name"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	JobTitle         string `json:"jobTitle,omitempty"`
	Locale           string `json:"locale,omitempty"`
	MarketingConsent bool   `json:"marketingConsent"`
}

type userResponse struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateUser creates a user profile through the user service.
func (d *UserDirectory) CreateUser(ctx context.Context, ndu registrationbus.NewDirectoryUser) (registrationbus.DirectoryUser, error) {
	req := newUserRequest{
		TenantID:         ndu.TenantID.String(),
		Name:             ndu.Name.String(),
		Username:         ndu.Username.String(),
		Email:            ndu.Email.Address,
		Locale:           ndu.Locale,
		MarketingConsent: ndu.MarketingConsent,
	}

	if v := ndu.Phone; v.Valid() {
		req.Phone = v.String()
	}
	if v := ndu.JobTitle; v.Valid() {
		req.JobTitle = v.String()
	}

	var result userResponse

	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post("/v1/users")

	if err != nil {
		return registrationbus.DirectoryUser{}, fmt.Errorf("post: %w: %w", registrationbus.ErrDependencyUnavailable, err)
	}

	if resp.IsError() {
		return registrationbus.DirectoryUser{}, fmt.Errorf("create user: %w", statusErr(resp))
	}

	return toDirectoryUser(result)
}

// QueryByUsername finds a user by username through the user service.
func (d *UserDirectory) QueryByUsername(ctx context.Context, uname username.Username) (registrationbus.DirectoryUser, error) {
	return d.query(ctx, "/v1/users/username/"+url.PathEscape(uname.String()))
}

// QueryByEmail finds a user by email through the user service.
func (d *UserDirectory) QueryByEmail(ctx context.Context, email mail.Address) (registrationbus.DirectoryUser, error) {
	return d.query(ctx, "/v1/users/email/"+url.PathEscape(email.Address))
}

func (d *UserDirectory) query(ctx context.Context, path string) (registrationbus.DirectoryUser, error) {
	var result userResponse

	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&errorResponse{}).
		Get(path)

	if err != nil {
		return registrationbus.DirectoryUser{}, fmt.Errorf("get: %w: %w", registrationbus.ErrDependencyUnavailable, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return registrationbus.DirectoryUser{}, registrationbus.ErrDirectoryUserNotFound
	}

	if resp.IsError() {
		return registrationbus.DirectoryUser{}, fmt.Errorf("query user: %w", statusErr(resp))
	}

	return toDirectoryUser(result)
}

func toDirectoryUser(result userResponse) (registrationbus.DirectoryUser, error) {
	id, err := uuid.Parse(result.ID)
	if err != nil {
		return registrationbus.DirectoryUser{}, fmt.Errorf("parse id: %w", err)
	}

	tenantID, err := uuid.Parse(result.TenantID)
	if err != nil {
		return registrationbus.DirectoryUser{}, fmt.Errorf("parse tenant id: %w", err)
	}

	uname, err := username.Parse(result.Username)
	if err != nil {
		return registrationbus.DirectoryUser{}, fmt.Errorf("parse username: %w", err)
	}

	return registrationbus.DirectoryUser{
		ID:       id,
		TenantID: tenantID,
		Username: uname,
		Email:    mail.Address{Address: result.Email},
	}, nil
}

// =============================================================================

// CredentialStore is an HTTP client for the credential service.
type CredentialStore struct {
	client *resty.Client
}

// NewCredentialStore constructs a credential store client.
func NewCredentialStore(cfg Config) *CredentialStore {
	return &CredentialStore{
		client: newClient(cfg.CredentialHost, cfg),
	}
}

type newCredentialRequest struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Password string `json:"password"`
}

type credentialResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

// CreateCredentials stores a credential through the credential service.
func (d *CredentialStore) CreateCredentials(ctx context.Context, ndc registrationbus.NewDirectoryCredential) (registrationbus.DirectoryCredential, error) {
	var result credentialResponse

	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(newCredentialRequest{
			UserID:   ndc.UserID.String(),
			TenantID: ndc.TenantID.String(),
			Password: ndc.Password.String(),
		}).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post("/v1/credentials")

	if err != nil {
		return registrationbus.DirectoryCredential{}, fmt.Errorf("post: %w: %w", registrationbus.ErrDependencyUnavailable, err)
	}

	if resp.IsError() {
		return registrationbus.DirectoryCredential{}, fmt.Errorf("create credentials: %w", statusErr(resp))
	}

	id, err := uuid.Parse(result.ID)
	if err != nil {
		return registrationbus.DirectoryCredential{}, fmt.Errorf("parse id: %w", err)
	}

	userID, err := uuid.Parse(result.UserID)
	if err != nil {
		return registrationbus.DirectoryCredential{}, fmt.Errorf("parse user id: %w", err)
	}

	return registrationbus.DirectoryCredential{
		ID:     id,
		UserID: userID,
	}, nil
}
