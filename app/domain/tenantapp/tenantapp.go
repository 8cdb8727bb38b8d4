// Package tenantapp maintains the app layer api for the tenant domain.
package tenantapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/mid"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/subdomain"
)

type app struct {
	tenantBus *tenantbus.Core
}

func newApp(tenantBus *tenantbus.Core) *app {
	return &app{
		tenantBus: tenantBus,
	}
}

// availability reports whether a subdomain can still be claimed. Public
// so sign-up forms can offer live feedback.
func (a *app) availability(ctx context.Context, r *http.Request) web.Encoder {
	raw := r.URL.Query().Get("subdomain")

	sub, err := subdomain.Parse(raw)
	if err != nil {
		return errs.NewFieldErrors("subdomain", err)
	}

	available, err := a.tenantBus.SubdomainAvailable(ctx, sub)
	if err != nil {
		return errs.Errorf(errs.Internal, "availability: %s", err)
	}

	return Availability{
		Subdomain: sub.String(),
		Available: available,
	}
}

// queryByID returns the caller's own tenant.
func (a *app) queryByID(ctx context.Context, _ *http.Request) web.Encoder {
	tnt, errResp := a.callerTenant(ctx)
	if errResp != nil {
		return errResp
	}

	return toAppTenant(tnt)
}

// update updates the caller's own tenant.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateTenant
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tnt, errResp := a.callerTenant(ctx)
	if errResp != nil {
		return errResp
	}

	ut, err := toBusUpdateTenant(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updTnt, err := a.tenantBus.Update(ctx, tnt, ut)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: tenantID[%s] ut[%+v]: %s", tnt.ID, ut, err)
	}

	return toAppTenant(updTnt)
}

// callerTenant loads the tenant the authenticated user belongs to.
func (a *app) callerTenant(ctx context.Context) (tenantbus.Tenant, web.Encoder) {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return tenantbus.Tenant{}, errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	tnt, err := a.tenantBus.QueryByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantbus.ErrNotFound) {
			return tenantbus.Tenant{}, errs.New(errs.NotFound, err)
		}
		return tenantbus.Tenant{}, errs.Errorf(errs.InternalOnlyLog, "query tenant: %s", err)
	}

	return tnt, nil
}
