package registrationapp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/stretchr/testify/require"
)

func Test_ErrResponseCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errs.ErrCode
	}{
		{
			name: "duplicate in progress",
			err:  fmt.Errorf("admit: key[a@b.com|Acme]: %w", registrationbus.ErrDuplicateInProgress),
			code: errs.Aborted,
		},
		{
			name: "validation",
			err:  fmt.Errorf("email[a@b.com] is already registered: %w", registrationbus.ErrValidation),
			code: errs.InvalidArgument,
		},
		{
			name: "dependency unavailable",
			err:  fmt.Errorf("create tenant: %w", registrationbus.ErrDependencyUnavailable),
			code: errs.Unavailable,
		},
		{
			name: "dependency conflict",
			err:  fmt.Errorf("create user: %w", registrationbus.ErrDependencyConflict),
			code: errs.Aborted,
		},
		{
			name: "partial state",
			err:  fmt.Errorf("create user: %w [tenant[abc]]: boom", registrationbus.ErrPartialState),
			code: errs.Internal,
		},
		{
			name: "unknown",
			err:  errors.New("boom"),
			code: errs.InternalOnlyLog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := toErrResponse(tt.err)

			appErr, ok := resp.(*errs.Error)
			require.True(t, ok)
			require.Equal(t, tt.code, appErr.Code)
		})
	}
}

func Test_PartialStateKeepsWarningPerKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errs.ErrCode
	}{
		{
			name: "conflict after tenant created",
			err:  fmt.Errorf("create user: %w [tenant[abc]]: %w", registrationbus.ErrPartialState, registrationbus.ErrDependencyConflict),
			code: errs.Aborted,
		},
		{
			name: "unavailable after tenant created",
			err:  fmt.Errorf("create user: %w [tenant[abc]]: %w", registrationbus.ErrPartialState, registrationbus.ErrDependencyUnavailable),
			code: errs.Unavailable,
		},
		{
			name: "unexpected after user created",
			err:  fmt.Errorf("create credentials: %w [tenant[abc], user[def]]: boom", registrationbus.ErrPartialState),
			code: errs.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := toErrResponse(tt.err)

			appErr, ok := resp.(*errs.Error)
			require.True(t, ok)
			require.Equal(t, tt.code, appErr.Code)
			require.Contains(t, appErr.Message, "partial state may exist")
		})
	}
}

func Test_PartialStateMessageHidesResources(t *testing.T) {
	err := fmt.Errorf("create credentials: %w [tenant[abc], user[def]]: %w", registrationbus.ErrPartialState, registrationbus.ErrDependencyConflict)

	resp := toErrResponse(err)

	appErr, ok := resp.(*errs.Error)
	require.True(t, ok)
	require.Contains(t, appErr.Message, "partial state may exist")
	require.NotContains(t, appErr.Message, "tenant[abc]")
	require.NotContains(t, appErr.Message, "user[def]")
}
