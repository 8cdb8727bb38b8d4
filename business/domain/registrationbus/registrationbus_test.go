package registrationbus_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus/stores/registrymem"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelError, "TEST", nil)
}

// =============================================================================
// Directory stubs

type stubTenantDir struct {
	mu          sync.Mutex
	taken       map[string]bool
	checkErr    error
	createErr   error
	createCalls int
	created     []registrationbus.NewDirectoryTenant
	release     chan struct{}
}

func (s *stubTenantDir) CreateTenant(ctx context.Context, ndt registrationbus.NewDirectoryTenant) (registrationbus.DirectoryTenant, error) {
	s.mu.Lock()
	s.createCalls++
	s.created = append(s.created, ndt)
	release := s.release
	s.mu.Unlock()

	if release != nil {
		<-release
	}

	if s.createErr != nil {
		return registrationbus.DirectoryTenant{}, s.createErr
	}

	return registrationbus.DirectoryTenant{
		ID:        uuid.New(),
		Subdomain: ndt.Subdomain,
	}, nil
}

func (s *stubTenantDir) SubdomainAvailable(ctx context.Context, sub subdomain.Subdomain) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.taken[sub.String()], nil
}

type stubUserDir struct {
	mu            sync.Mutex
	usernames     map[string]bool
	emails        map[string]bool
	lookupErr     error
	createErr     error
	createCalls   int
	lastCreateReq registrationbus.NewDirectoryUser
}

func (s *stubUserDir) CreateUser(ctx context.Context, ndu registrationbus.NewDirectoryUser) (registrationbus.DirectoryUser, error) {
	s.mu.Lock()
	s.createCalls++
	s.lastCreateReq = ndu
	s.mu.Unlock()

	if s.createErr != nil {
		return registrationbus.DirectoryUser{}, s.createErr
	}

	return registrationbus.DirectoryUser{
		ID:       uuid.New(),
		TenantID: ndu.TenantID,
		Username: ndu.Username,
		Email:    ndu.Email,
	}, nil
}

func (s *stubUserDir) QueryByUsername(ctx context.Context, uname username.Username) (registrationbus.DirectoryUser, error) {
	if s.lookupErr != nil {
		return registrationbus.DirectoryUser{}, s.lookupErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernames[uname.String()] {
		return registrationbus.DirectoryUser{ID: uuid.New(), Username: uname}, nil
	}

	return registrationbus.DirectoryUser{}, registrationbus.ErrDirectoryUserNotFound
}

func (s *stubUserDir) QueryByEmail(ctx context.Context, email mail.Address) (registrationbus.DirectoryUser, error) {
	if s.lookupErr != nil {
		return registrationbus.DirectoryUser{}, s.lookupErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emails[email.Address] {
		return registrationbus.DirectoryUser{ID: uuid.New(), Email: email}, nil
	}

	return registrationbus.DirectoryUser{}, registrationbus.ErrDirectoryUserNotFound
}

type stubCredStore struct {
	mu          sync.Mutex
	createErr   error
	createCalls int
}

func (s *stubCredStore) CreateCredentials(ctx context.Context, ndc registrationbus.NewDirectoryCredential) (registrationbus.DirectoryCredential, error) {
	s.mu.Lock()
	s.createCalls++
	s.mu.Unlock()

	if s.createErr != nil {
		return registrationbus.DirectoryCredential{}, s.createErr
	}

	return registrationbus.DirectoryCredential{
		ID:     uuid.New(),
		UserID: ndc.UserID,
	}, nil
}

// =============================================================================

func newTestCore(t *testing.T, tenants *stubTenantDir, users *stubUserDir, creds *stubCredStore) *registrationbus.Core {
	t.Helper()

	log := testLogger()

	return registrationbus.NewCore(registrationbus.Config{
		Log:         log,
		Registry:    registrymem.New(),
		Tenants:     tenants,
		Users:       users,
		Credentials: creds,
		SubdomainChecker: registrationbus.NewSubdomainChecker(registrationbus.SubdomainCheckerConfig{
			Log:       log,
			Directory: tenants,
			Sleep:     func(ctx context.Context, d time.Duration) {},
		}),
		Now: func() time.Time { return time.Unix(1700004242, 0) },
	})
}

func validRegistration(t *testing.T) registrationbus.NewRegistration {
	t.Helper()

	return registrationbus.NewRegistration{
		Email:       mail.Address{Address: "a@b.com"},
		Username:    username.MustParse("abee"),
		Password:    password.MustParse("s3cretpass"),
		CompanyName: name.MustParse("Acme Co"),
		Name:        name.MustParse("Ada Bee"),
		Locale:      "en",
		Plan:        plan.Trial,
	}
}

func Test_Register_Success(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	reg, err := core.Register(context.Background(), validRegistration(t))
	require.NoError(t, err)

	assert.Equal(t, "acme-co", reg.Tenant.Subdomain.String())
	assert.NotEqual(t, uuid.Nil, reg.Tenant.ID)
	assert.NotEqual(t, uuid.Nil, reg.User.ID)
	assert.NotEqual(t, uuid.Nil, reg.Credential.ID)
	assert.Equal(t, reg.Tenant.ID, reg.User.TenantID)
	assert.Equal(t, reg.User.ID, reg.Credential.UserID)
}

func Test_Register_TakenBaseUsesVariant(t *testing.T) {
	tenants := &stubTenantDir{
		taken: map[string]bool{"acme-co": true},
	}
	users := &stubUserDir{}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	reg, err := core.Register(context.Background(), validRegistration(t))
	require.NoError(t, err)

	assert.Equal(t, "acme-co-1", reg.Tenant.Subdomain.String())
}

func Test_Register_DuplicateInFlight(t *testing.T) {
	release := make(chan struct{})
	tenants := &stubTenantDir{release: release}
	users := &stubUserDir{}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	firstDone := make(chan error, 1)
	go func() {
		_, err := core.Register(context.Background(), validRegistration(t))
		firstDone <- err
	}()

	// Wait for the first execution to block inside tenant creation so
	// it is holding the dedup key.
	require.Eventually(t, func() bool {
		tenants.mu.Lock()
		defer tenants.mu.Unlock()
		return tenants.createCalls == 1
	}, time.Second, 5*time.Millisecond)

	_, err := core.Register(context.Background(), validRegistration(t))
	require.ErrorIs(t, err, registrationbus.ErrDuplicateInProgress)

	close(release)
	require.NoError(t, <-firstDone)

	// The key must be reusable after completion.
	tenants.release = nil
	_, err = core.Register(context.Background(), validRegistration(t))
	require.NoError(t, err)
}

func Test_Register_ExistingEmail(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{
		emails: map[string]bool{"a@b.com": true},
	}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	_, err := core.Register(context.Background(), validRegistration(t))
	require.ErrorIs(t, err, registrationbus.ErrValidation)

	assert.Zero(t, tenants.createCalls)
	assert.Zero(t, users.createCalls)
	assert.Zero(t, creds.createCalls)
}

func Test_Register_ExistingUsername(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{
		usernames: map[string]bool{"abee": true},
	}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	_, err := core.Register(context.Background(), validRegistration(t))
	require.ErrorIs(t, err, registrationbus.ErrValidation)
	assert.Zero(t, tenants.createCalls)
}

func Test_Register_UserCreateFailurePartialState(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{
		createErr: errors.New("boom"),
	}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	_, err := core.Register(context.Background(), validRegistration(t))
	require.Error(t, err)
	require.ErrorIs(t, err, registrationbus.ErrPartialState)
	assert.Contains(t, err.Error(), "partial state may exist")
	assert.Contains(t, err.Error(), "tenant[")

	assert.Equal(t, 1, tenants.createCalls)
	assert.Zero(t, creds.createCalls)

	// The guard must not wedge the key after an abort.
	users.createErr = nil
	_, err = core.Register(context.Background(), validRegistration(t))
	require.NoError(t, err)
}

func Test_Register_TenantConflict(t *testing.T) {
	tenants := &stubTenantDir{
		createErr: registrationbus.ErrDependencyConflict,
	}
	users := &stubUserDir{}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	_, err := core.Register(context.Background(), validRegistration(t))
	require.ErrorIs(t, err, registrationbus.ErrDependencyConflict)
	assert.NotContains(t, err.Error(), "partial state")
}

func Test_Register_ConflictAfterTenantKeepsPartialState(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{
		createErr: registrationbus.ErrDependencyConflict,
	}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	// A conflict that loses the race after the tenant is created must
	// still carry the partial state marker alongside the conflict kind.
	_, err := core.Register(context.Background(), validRegistration(t))
	require.ErrorIs(t, err, registrationbus.ErrDependencyConflict)
	require.ErrorIs(t, err, registrationbus.ErrPartialState)
	assert.Contains(t, err.Error(), "partial state may exist")
}

func Test_Register_DeadlineMapsToUnavailable(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{
		createErr: fmt.Errorf("create user: %w", context.DeadlineExceeded),
	}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	_, err := core.Register(context.Background(), validRegistration(t))
	require.ErrorIs(t, err, registrationbus.ErrDependencyUnavailable)
	require.ErrorIs(t, err, registrationbus.ErrPartialState)
}

func Test_Register_CheckerOutageFailsOpen(t *testing.T) {
	tenants := &stubTenantDir{
		checkErr: errors.New("directory down"),
	}
	users := &stubUserDir{}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	// All availability checks error out, the fail-open policy lets the
	// base candidate through to tenant creation.
	reg, err := core.Register(context.Background(), validRegistration(t))
	require.NoError(t, err)
	assert.Equal(t, "acme-co", reg.Tenant.Subdomain.String())
}

func Test_Register_IdentityLookupErrorIsAvailable(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{
		lookupErr: errors.New("directory down"),
	}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	// A broken identity lookup reads as "available" under the default
	// fail-open policy.
	_, err := core.Register(context.Background(), validRegistration(t))
	require.NoError(t, err)
}

func Test_Register_VariantsExhaustedFallback(t *testing.T) {
	taken := map[string]bool{"acme-co": true}
	for n := 1; n < subdomain.MaxNumberedVariants; n++ {
		taken["acme-co-"+strconv.Itoa(n)] = true
	}

	tenants := &stubTenantDir{taken: taken}
	users := &stubUserDir{}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	reg, err := core.Register(context.Background(), validRegistration(t))
	require.NoError(t, err)

	assert.Equal(t, "company-4242", reg.Tenant.Subdomain.String())
}

func Test_Register_MissingRequiredFields(t *testing.T) {
	tenants := &stubTenantDir{}
	users := &stubUserDir{}
	creds := &stubCredStore{}

	core := newTestCore(t, tenants, users, creds)

	nr := validRegistration(t)
	nr.CompanyName = name.Name{}

	_, err := core.Register(context.Background(), nr)
	require.ErrorIs(t, err, registrationbus.ErrValidation)
}
