// Package authapp maintains the app layer api for the auth domain.
package authapp

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/auth"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
)

type app struct {
	auth      *auth.Auth
	tenantBus *tenantbus.Core
	activeKID string
}

func newApp(auth *auth.Auth, tenantBus *tenantbus.Core, activeKID string) *app {
	return &app{
		auth:      auth,
		tenantBus: tenantBus,
		activeKID: activeKID,
	}
}

func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	pass, err := password.Parse(req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, auth.ErrForbidden)
	}

	usr, err := a.auth.Login(ctx, *addr, pass)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	// Tenant binding: the tenant holding the user must still be enabled.
	tnt, err := a.tenantBus.QueryByID(ctx, usr.TenantID)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if !tnt.Enabled {
		return errs.New(errs.PermissionDenied, fmt.Errorf("tenant[%s] is disabled", tnt.Subdomain))
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, usr.TenantID, usr.ID, usr.Role)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}
