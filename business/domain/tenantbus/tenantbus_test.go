package tenantbus_test

import (
	"context"
	"io"
	"testing"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubStorer struct {
	byID  map[uuid.UUID]tenantbus.Tenant
	bySub map[string]tenantbus.Tenant
}

func newStubStorer() *stubStorer {
	return &stubStorer{
		byID:  make(map[uuid.UUID]tenantbus.Tenant),
		bySub: make(map[string]tenantbus.Tenant),
	}
}

func (s *stubStorer) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

func (s *stubStorer) Create(ctx context.Context, t tenantbus.Tenant) error {
	if _, exists := s.bySub[t.Subdomain.String()]; exists {
		return tenantbus.ErrUniqueSubdomain
	}
	s.byID[t.ID] = t
	s.bySub[t.Subdomain.String()] = t
	return nil
}

func (s *stubStorer) Update(ctx context.Context, t tenantbus.Tenant) error {
	s.byID[t.ID] = t
	s.bySub[t.Subdomain.String()] = t
	return nil
}

func (s *stubStorer) Delete(ctx context.Context, t tenantbus.Tenant) error {
	delete(s.byID, t.ID)
	delete(s.bySub, t.Subdomain.String())
	return nil
}

func (s *stubStorer) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	t, exists := s.byID[tenantID]
	if !exists {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return t, nil
}

func (s *stubStorer) QueryBySubdomain(ctx context.Context, sub subdomain.Subdomain) (tenantbus.Tenant, error) {
	t, exists := s.bySub[sub.String()]
	if !exists {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return t, nil
}

func (s *stubStorer) ExistsBySubdomain(ctx context.Context, sub subdomain.Subdomain) (bool, error) {
	_, exists := s.bySub[sub.String()]
	return exists, nil
}

func testCore() *tenantbus.Core {
	log := logger.New(io.Discard, logger.LevelError, "TEST", nil)
	return tenantbus.NewCore(log, newStubStorer())
}

func Test_CreateEnablesTenant(t *testing.T) {
	core := testCore()

	tnt, err := core.Create(context.Background(), tenantbus.NewTenant{
		Name:      name.MustParse("Acme Co"),
		Subdomain: subdomain.MustParse("acme-co"),
		Plan:      plan.Trial,
	})
	require.NoError(t, err)
	require.True(t, tnt.Enabled)

	got, err := core.QueryByID(context.Background(), tnt.ID)
	require.NoError(t, err)
	require.Equal(t, tnt.ID, got.ID)
}

func Test_SubdomainAvailable(t *testing.T) {
	core := testCore()

	available, err := core.SubdomainAvailable(context.Background(), subdomain.MustParse("acme-co"))
	require.NoError(t, err)
	require.True(t, available)

	_, err = core.Create(context.Background(), tenantbus.NewTenant{
		Name:      name.MustParse("Acme Co"),
		Subdomain: subdomain.MustParse("acme-co"),
		Plan:      plan.Trial,
	})
	require.NoError(t, err)

	available, err = core.SubdomainAvailable(context.Background(), subdomain.MustParse("acme-co"))
	require.NoError(t, err)
	require.False(t, available)
}

func Test_DuplicateSubdomainRejected(t *testing.T) {
	core := testCore()

	nt := tenantbus.NewTenant{
		Name:      name.MustParse("Acme Co"),
		Subdomain: subdomain.MustParse("acme-co"),
		Plan:      plan.Trial,
	}

	_, err := core.Create(context.Background(), nt)
	require.NoError(t, err)

	_, err = core.Create(context.Background(), nt)
	require.ErrorIs(t, err, tenantbus.ErrUniqueSubdomain)
}

func Test_UpdatePlanAndEnabled(t *testing.T) {
	core := testCore()

	tnt, err := core.Create(context.Background(), tenantbus.NewTenant{
		Name:      name.MustParse("Acme Co"),
		Subdomain: subdomain.MustParse("acme-co"),
		Plan:      plan.Trial,
	})
	require.NoError(t, err)

	enabled := false
	upgraded := plan.Enterprise

	got, err := core.Update(context.Background(), tnt, tenantbus.UpdateTenant{
		Plan:    &upgraded,
		Enabled: &enabled,
	})
	require.NoError(t, err)
	require.Equal(t, plan.Enterprise, got.Plan)
	require.False(t, got.Enabled)
}
