package registrationbus_test

import (
	"context"
	"errors"
	"net/mail"
	"testing"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SubdomainChecker_FirstTryAvailable(t *testing.T) {
	tenants := &stubTenantDir{}

	var slept []time.Duration
	checker := registrationbus.NewSubdomainChecker(registrationbus.SubdomainCheckerConfig{
		Log:       testLogger(),
		Directory: tenants,
		Sleep: func(ctx context.Context, d time.Duration) {
			slept = append(slept, d)
		},
	})

	got := checker.Available(context.Background(), subdomain.Derive("Acme Co"))

	assert.True(t, got)
	assert.Empty(t, slept)
}

func Test_SubdomainChecker_FailOpenWithLinearBackoff(t *testing.T) {
	tenants := &stubTenantDir{
		checkErr: errors.New("connection refused"),
	}

	var slept []time.Duration
	checker := registrationbus.NewSubdomainChecker(registrationbus.SubdomainCheckerConfig{
		Log:       testLogger(),
		Directory: tenants,
		Sleep: func(ctx context.Context, d time.Duration) {
			slept = append(slept, d)
		},
	})

	got := checker.Available(context.Background(), subdomain.Derive("Acme Co"))

	assert.True(t, got, "exhausted retries must fail open")
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, slept)
}

func Test_SubdomainChecker_FailClosed(t *testing.T) {
	tenants := &stubTenantDir{
		checkErr: errors.New("connection refused"),
	}

	checker := registrationbus.NewSubdomainChecker(registrationbus.SubdomainCheckerConfig{
		Log:       testLogger(),
		Directory: tenants,
		Policy:    registrationbus.FailClosed,
		Sleep:     func(ctx context.Context, d time.Duration) {},
	})

	got := checker.Available(context.Background(), subdomain.Derive("Acme Co"))

	assert.False(t, got)
}

func Test_SubdomainChecker_TakenNotRetried(t *testing.T) {
	tenants := &stubTenantDir{
		taken: map[string]bool{"acme-co": true},
	}

	var slept []time.Duration
	checker := registrationbus.NewSubdomainChecker(registrationbus.SubdomainCheckerConfig{
		Log:       testLogger(),
		Directory: tenants,
		Sleep: func(ctx context.Context, d time.Duration) {
			slept = append(slept, d)
		},
	})

	got := checker.Available(context.Background(), subdomain.Derive("Acme Co"))

	assert.False(t, got, "a definitive answer is not a retryable failure")
	assert.Empty(t, slept)
}

func Test_IdentityChecker_NotFoundIsAvailable(t *testing.T) {
	users := &stubUserDir{}

	checker := registrationbus.NewIdentityChecker(testLogger(), users, registrationbus.FailOpen)

	assert.True(t, checker.UsernameAvailable(context.Background(), username.MustParse("abee")))
	assert.True(t, checker.EmailAvailable(context.Background(), mail.Address{Address: "a@b.com"}))
}

func Test_IdentityChecker_FoundIsTaken(t *testing.T) {
	users := &stubUserDir{
		usernames: map[string]bool{"abee": true},
		emails:    map[string]bool{"a@b.com": true},
	}

	checker := registrationbus.NewIdentityChecker(testLogger(), users, registrationbus.FailOpen)

	assert.False(t, checker.UsernameAvailable(context.Background(), username.MustParse("abee")))
	assert.False(t, checker.EmailAvailable(context.Background(), mail.Address{Address: "a@b.com"}))
}

func Test_IdentityChecker_LookupErrorPolicies(t *testing.T) {
	users := &stubUserDir{
		lookupErr: errors.New("directory down"),
	}

	open := registrationbus.NewIdentityChecker(testLogger(), users, registrationbus.FailOpen)
	require.True(t, open.UsernameAvailable(context.Background(), username.MustParse("abee")))
	require.True(t, open.EmailAvailable(context.Background(), mail.Address{Address: "a@b.com"}))

	closed := registrationbus.NewIdentityChecker(testLogger(), users, registrationbus.FailClosed)
	require.False(t, closed.UsernameAvailable(context.Background(), username.MustParse("abee")))
	require.False(t, closed.EmailAvailable(context.Background(), mail.Address{Address: "a@b.com"}))
}
