package credentialbus_test

import (
	"context"
	"testing"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubStorer struct {
	byUser map[uuid.UUID]credentialbus.Credential
}

func newStubStorer() *stubStorer {
	return &stubStorer{
		byUser: make(map[uuid.UUID]credentialbus.Credential),
	}
}

func (s *stubStorer) NewWithTx(tx sqldb.CommitRollbacker) (credentialbus.Storer, error) {
	return s, nil
}

func (s *stubStorer) Create(ctx context.Context, cred credentialbus.Credential) error {
	if _, exists := s.byUser[cred.UserID]; exists {
		return credentialbus.ErrUniqueUser
	}
	s.byUser[cred.UserID] = cred
	return nil
}

func (s *stubStorer) Update(ctx context.Context, cred credentialbus.Credential) error {
	s.byUser[cred.UserID] = cred
	return nil
}

func (s *stubStorer) Delete(ctx context.Context, cred credentialbus.Credential) error {
	delete(s.byUser, cred.UserID)
	return nil
}

func (s *stubStorer) QueryByUserID(ctx context.Context, userID uuid.UUID) (credentialbus.Credential, error) {
	cred, exists := s.byUser[userID]
	if !exists {
		return credentialbus.Credential{}, credentialbus.ErrNotFound
	}
	return cred, nil
}

func Test_CreateHashesPassword(t *testing.T) {
	core := credentialbus.NewCore(newStubStorer())
	userID := uuid.New()

	cred, err := core.Create(context.Background(), credentialbus.NewCredential{
		UserID:   userID,
		TenantID: uuid.New(),
		Password: password.MustParse("s3cretpass"),
	})
	require.NoError(t, err)
	require.Equal(t, userID, cred.UserID)
	require.NotContains(t, string(cred.PasswordHash), "s3cretpass")
	require.NoError(t, bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte("s3cretpass")))
}

func Test_AuthenticateRoundTrip(t *testing.T) {
	core := credentialbus.NewCore(newStubStorer())
	userID := uuid.New()

	created, err := core.Create(context.Background(), credentialbus.NewCredential{
		UserID:   userID,
		TenantID: uuid.New(),
		Password: password.MustParse("s3cretpass"),
	})
	require.NoError(t, err)

	cred, err := core.Authenticate(context.Background(), userID, password.MustParse("s3cretpass"))
	require.NoError(t, err)
	require.Equal(t, created.ID, cred.ID)
}

func Test_AuthenticateWrongPassword(t *testing.T) {
	core := credentialbus.NewCore(newStubStorer())
	userID := uuid.New()

	_, err := core.Create(context.Background(), credentialbus.NewCredential{
		UserID:   userID,
		TenantID: uuid.New(),
		Password: password.MustParse("s3cretpass"),
	})
	require.NoError(t, err)

	_, err = core.Authenticate(context.Background(), userID, password.MustParse("wrongpass1"))
	require.ErrorIs(t, err, credentialbus.ErrAuthenticationFailure)
}

func Test_AuthenticateUnknownUser(t *testing.T) {
	core := credentialbus.NewCore(newStubStorer())

	_, err := core.Authenticate(context.Background(), uuid.New(), password.MustParse("s3cretpass"))
	require.ErrorIs(t, err, credentialbus.ErrAuthenticationFailure)
}

func Test_UpdateRotatesHash(t *testing.T) {
	core := credentialbus.NewCore(newStubStorer())
	userID := uuid.New()

	created, err := core.Create(context.Background(), credentialbus.NewCredential{
		UserID:   userID,
		TenantID: uuid.New(),
		Password: password.MustParse("s3cretpass"),
	})
	require.NoError(t, err)

	_, err = core.Update(context.Background(), created, credentialbus.UpdateCredential{
		Password: password.MustParse("n3wsecret"),
	})
	require.NoError(t, err)

	_, err = core.Authenticate(context.Background(), userID, password.MustParse("s3cretpass"))
	require.ErrorIs(t, err, credentialbus.ErrAuthenticationFailure)

	_, err = core.Authenticate(context.Background(), userID, password.MustParse("n3wsecret"))
	require.NoError(t, err)
}
