package registrationbus

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
)

// FailPolicy declares what a checker reports when it cannot get a
// definitive answer from its directory.
type FailPolicy int

const (
	// FailOpen reports "available" on exhaustion so a directory outage
	// does not block registrations. The directory's own uniqueness
	// constraint catches the cases where the assumption was wrong.
	FailOpen FailPolicy = iota

	// FailClosed reports "not available" on exhaustion.
	FailClosed
)

const (
	defaultCheckAttempts = 3
	defaultCheckBackoff  = time.Second
)

// SubdomainCheckerConfig carries the tunables for a SubdomainChecker.
// Zero values fall back to the defaults.
type SubdomainCheckerConfig struct {
	Log       *logger.Logger
	Directory TenantDirectory
	Attempts  int
	Backoff   time.Duration
	Policy    FailPolicy
	Sleep     func(ctx context.Context, d time.Duration)
}

// SubdomainChecker asks the tenant directory whether a subdomain
// candidate is free, retrying transient failures with linear backoff.
type SubdomainChecker struct {
	log      *logger.Logger
	dir      TenantDirectory
	attempts int
	backoff  time.Duration
	policy   FailPolicy
	sleep    func(ctx context.Context, d time.Duration)
}

// NewSubdomainChecker constructs a checker for use by the orchestrator.
func NewSubdomainChecker(cfg SubdomainCheckerConfig) *SubdomainChecker {
	if cfg.Attempts == 0 {
		cfg.Attempts = defaultCheckAttempts
	}
	if cfg.Backoff == 0 {
		cfg.Backoff = defaultCheckBackoff
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleep
	}

	return &SubdomainChecker{
		log:      cfg.Log,
		dir:      cfg.Directory,
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
		policy:   cfg.Policy,
		sleep:    cfg.Sleep,
	}
}

// Available reports whether the candidate can be used for a new tenant.
// Each failed attempt n sleeps n times the backoff before the next try.
// Exhausting all attempts resolves per the configured FailPolicy.
func (c *SubdomainChecker) Available(ctx context.Context, sub subdomain.Subdomain) bool {
	for attempt := 1; attempt <= c.attempts; attempt++ {
		available, err := c.dir.SubdomainAvailable(ctx, sub)
		if err == nil {
			return available
		}

		c.log.Warn(ctx, "subdomain availability check failed", "subdomain", sub, "attempt", attempt, "err", err)

		if attempt < c.attempts {
			c.sleep(ctx, time.Duration(attempt)*c.backoff)
		}
	}

	return c.policy == FailOpen
}

// =============================================================================

// IdentityChecker asks the user directory whether a username or email
// is already registered. Lookups are not retried. A not-found answer
// means available; any other lookup failure resolves per the
// configured FailPolicy.
type IdentityChecker struct {
	log    *logger.Logger
	dir    UserDirectory
	policy FailPolicy
}

// NewIdentityChecker constructs a checker for use by the orchestrator.
func NewIdentityChecker(log *logger.Logger, dir UserDirectory, policy FailPolicy) *IdentityChecker {
	return &IdentityChecker{
		log:    log,
		dir:    dir,
		policy: policy,
	}
}

// UsernameAvailable reports whether no user exists with the username.
func (c *IdentityChecker) UsernameAvailable(ctx context.Context, uname username.Username) bool {
	_, err := c.dir.QueryByUsername(ctx, uname)

	switch {
	case err == nil:
		return false

	case errors.Is(err, ErrDirectoryUserNotFound):
		return true

	default:
		c.log.Warn(ctx, "username lookup failed", "username", uname, "err", err)
		return c.policy == FailOpen
	}
}

// EmailAvailable reports whether no user exists with the email.
func (c *IdentityChecker) EmailAvailable(ctx context.Context, email mail.Address) bool {
	_, err := c.dir.QueryByEmail(ctx, email)

	switch {
	case err == nil:
		return false

	case errors.Is(err, ErrDirectoryUserNotFound):
		return true

	default:
		c.log.Warn(ctx, "email lookup failed", "email", email.Address, "err", err)
		return c.policy == FailOpen
	}
}

// sleep blocks for the specified duration or until the context is done.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
