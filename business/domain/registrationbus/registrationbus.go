// Package registrationbus orchestrates company registration across the
// tenant directory, user directory, and credential store.
package registrationbus

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/otel"
)

var (
	ErrDuplicateInProgress   = errors.New("registration already in progress")
	ErrValidation            = errors.New("validation failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrDependencyConflict    = errors.New("dependency conflict")
	ErrDirectoryUserNotFound = errors.New("directory user not found")

	// ErrPartialState marks an abort that happened after at least one
	// resource was created. It wraps alongside the causing error so
	// callers can surface the warning whatever the failure kind was.
	ErrPartialState = errors.New("partial state may exist")
)

// defaultTimeout bounds a whole registration so a stuck directory call
// cannot hold the dedup key forever.
const defaultTimeout = 30 * time.Second

// Registry tracks registrations that are currently in flight. TryAdmit
// reports true only for the single caller that inserted the key.
// Release is idempotent and must run on every exit path. Snapshot and
// Clear exist for observability and crash recovery.
type Registry interface {
	TryAdmit(key string) bool
	Release(key string)
	Snapshot() []string
	Clear() int
}

// TenantDirectory declares the tenant capabilities the orchestrator
// consumes.
type TenantDirectory interface {
	CreateTenant(ctx context.Context, ndt NewDirectoryTenant) (DirectoryTenant, error)
	SubdomainAvailable(ctx context.Context, sub subdomain.Subdomain) (bool, error)
}

// UserDirectory declares the user profile capabilities the orchestrator
// consumes. Lookups return ErrDirectoryUserNotFound when no user
// matches the identity.
type UserDirectory interface {
	CreateUser(ctx context.Context, ndu NewDirectoryUser) (DirectoryUser, error)
	QueryByUsername(ctx context.Context, uname username.Username) (DirectoryUser, error)
	QueryByEmail(ctx context.Context, email mail.Address) (DirectoryUser, error)
}

// CredentialStore declares the credential capabilities the orchestrator
// consumes.
type CredentialStore interface {
	CreateCredentials(ctx context.Context, ndc NewDirectoryCredential) (DirectoryCredential, error)
}

// Config carries the collaborators needed to construct a Core.
type Config struct {
	Log         *logger.Logger
	Registry    Registry
	Tenants     TenantDirectory
	Users       UserDirectory
	Credentials CredentialStore

	// SubdomainChecker and IdentityChecker default to fail-open
	// checkers over the directories above.
	SubdomainChecker *SubdomainChecker
	IdentityChecker  *IdentityChecker

	// Timeout bounds a single Register call. Defaults to 30s.
	Timeout time.Duration

	// Now feeds the clock based fallback subdomain. Defaults to
	// time.Now.
	Now func() time.Time
}

// Core manages the registration workflow.
type Core struct {
	log         *logger.Logger
	registry    Registry
	tenants     TenantDirectory
	users       UserDirectory
	credentials CredentialStore
	subCheck    *SubdomainChecker
	idCheck     *IdentityChecker
	timeout     time.Duration
	now         func() time.Time
}

// NewCore constructs a registration core for use.
func NewCore(cfg Config) *Core {
	if cfg.SubdomainChecker == nil {
		cfg.SubdomainChecker = NewSubdomainChecker(SubdomainCheckerConfig{
			Log:       cfg.Log,
			Directory: cfg.Tenants,
		})
	}

	if cfg.IdentityChecker == nil {
		cfg.IdentityChecker = NewIdentityChecker(cfg.Log, cfg.Users, FailOpen)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Core{
		log:         cfg.Log,
		registry:    cfg.Registry,
		tenants:     cfg.Tenants,
		users:       cfg.Users,
		credentials: cfg.Credentials,
		subCheck:    cfg.SubdomainChecker,
		idCheck:     cfg.IdentityChecker,
		timeout:     cfg.Timeout,
		now:         cfg.Now,
	}
}

// Register runs the full registration workflow: admit the dedup key,
// validate, select a free subdomain, then create the tenant, the first
// user, and their credential in order. The key is released on every
// exit path. Created resources are not rolled back on a later failure,
// the error reports that partial state may exist.
func (c *Core) Register(ctx context.Context, nr NewRegistration) (Registration, error) {
	ctx, span := otel.AddSpan(ctx, "business.registrationbus.register")
	defer span.End()

	key := nr.DedupKey()

	if !c.registry.TryAdmit(key) {
		return Registration{}, fmt.Errorf("admit: key[%s]: %w", key, ErrDuplicateInProgress)
	}
	defer c.registry.Release(key)

	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.validate(ctx, nr); err != nil {
		return Registration{}, err
	}

	sub := c.selectSubdomain(ctx, nr.CompanyName.String())

	var created []undoRecord

	tnt, err := c.tenants.CreateTenant(ctx, NewDirectoryTenant{
		Name:      nr.CompanyName,
		Subdomain: sub,
		Plan:      nr.Plan,
	})
	if err != nil {
		return Registration{}, c.abort(ctx, "create tenant", created, err)
	}
	created = append(created, undoRecord{resource: fmt.Sprintf("tenant[%s]", tnt.ID)})

	usr, err := c.users.CreateUser(ctx, NewDirectoryUser{
		TenantID:         tnt.ID,
		Name:             nr.Name,
		Username:         nr.Username,
		Email:            nr.Email,
		Phone:            nr.Phone,
		JobTitle:         nr.JobTitle,
		Locale:           nr.Locale,
		MarketingConsent: nr.MarketingConsent,
	})
	if err != nil {
		return Registration{}, c.abort(ctx, "create user", created, err)
	}
	created = append(created, undoRecord{resource: fmt.Sprintf("user[%s]", usr.ID)})

	cred, err := c.credentials.CreateCredentials(ctx, NewDirectoryCredential{
		UserID:   usr.ID,
		TenantID: tnt.ID,
		Password: nr.Password,
	})
	if err != nil {
		return Registration{}, c.abort(ctx, "create credentials", created, err)
	}

	c.log.Info(ctx, "registration complete", "tenant", tnt.ID, "subdomain", tnt.Subdomain, "user", usr.ID)

	reg := Registration{
		Tenant:     tnt,
		User:       usr,
		Credential: cred,
	}

	return reg, nil
}

// Snapshot returns the dedup keys currently in flight.
func (c *Core) Snapshot() []string {
	return c.registry.Snapshot()
}

// ClearInFlight removes every in-flight dedup key and returns how many
// were removed. Recovery use only, clearing while registrations are
// genuinely running can mask duplicate submissions.
func (c *Core) ClearInFlight(ctx context.Context) int {
	n := c.registry.Clear()
	c.log.Warn(ctx, "cleared in-flight registrations", "count", n)

	return n
}

// validate runs the checks required before any resource is created:
// structural presence, identity uniqueness, and a single advisory probe
// of the base subdomain candidate.
func (c *Core) validate(ctx context.Context, nr NewRegistration) error {
	if nr.Email.Address == "" || nr.Username.String() == "" || nr.CompanyName.String() == "" {
		return fmt.Errorf("email, username and company name are required: %w", ErrValidation)
	}

	if !c.idCheck.UsernameAvailable(ctx, nr.Username) {
		return fmt.Errorf("username[%s] is already registered: %w", nr.Username, ErrValidation)
	}

	if !c.idCheck.EmailAvailable(ctx, nr.Email) {
		return fmt.Errorf("email[%s] is already registered: %w", nr.Email.Address, ErrValidation)
	}

	// Single direct probe of the base candidate, outside the checker's
	// retry budget. A taken base is not a validation failure, the
	// selection loop moves on to numbered variants.
	base := subdomain.Derive(nr.CompanyName.String())
	switch available, err := c.tenants.SubdomainAvailable(ctx, base); {
	case err != nil:
		c.log.Warn(ctx, "base subdomain probe failed", "subdomain", base, "err", err)
	case !available:
		c.log.Info(ctx, "base subdomain taken, variants will be tried", "subdomain", base)
	}

	return nil
}

// selectSubdomain picks the subdomain for a new tenant: the base
// candidate if free, then numbered variants, then a clock based
// fallback that is accepted without an availability check.
func (c *Core) selectSubdomain(ctx context.Context, companyName string) subdomain.Subdomain {
	base := subdomain.Derive(companyName)

	if c.subCheck.Available(ctx, base) {
		return base
	}

	for n := 1; n < subdomain.MaxNumberedVariants; n++ {
		candidate := base.Variant(n)
		if c.subCheck.Available(ctx, candidate) {
			return candidate
		}
	}

	fallback := subdomain.Fallback(c.now())
	c.log.Warn(ctx, "numbered subdomain variants exhausted", "base", base, "fallback", fallback)

	return fallback
}

// undoRecord captures a resource created during an execution together
// with an optional compensating action. The undo funcs are never run
// today, aborts only report the resources, but each creation step
// records one so compensation can be invoked in reverse order later.
type undoRecord struct {
	resource string
	undo     func(ctx context.Context) error
}

// abort wraps a creation failure, recording any resources already
// created. There is no compensation, earlier resources stay behind.
// A failure caused by the overall deadline expiring counts as the
// dependency being unavailable.
func (c *Core) abort(ctx context.Context, step string, created []undoRecord, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	if len(created) == 0 {
		return fmt.Errorf("%s: %w", step, err)
	}

	resources := make([]string, len(created))
	for i, rec := range created {
		resources[i] = rec.resource
	}

	c.log.Warn(ctx, "registration aborted after partial creation", "step", step, "created", resources, "err", err)

	return fmt.Errorf("%s: %w [%s]: %w", step, ErrPartialState, strings.Join(resources, ", "), err)
}
