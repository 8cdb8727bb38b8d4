// Package userapp maintains the app layer api for the user domain.
package userapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/auth"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/mid"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/query"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/order"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/page"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
	"github.com/google/uuid"
)

type app struct {
	auth    *auth.Auth
	userBus *userbus.Core
}

func newApp(auth *auth.Auth, userBus *userbus.Core) *app {
	return &app{
		auth:    auth,
		userBus: userBus,
	}
}

// create adds a new user to the caller's tenant.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	nu, err := toBusNewUser(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		if errors.Is(err, userbus.ErrUniqueUsername) {
			return errs.New(errs.Aborted, userbus.ErrUniqueUsername)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: usr[%+v]: %s", usr, err)
	}

	return toAppUser(usr)
}

// update updates the authenticated user's own profile.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.currentUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: userID[%s] uu[%+v]: %s", usr.ID, uu, err)
	}

	return toAppUser(updUsr)
}

// updateRole updates an existing user's role.
func (a *app) updateRole(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUserRole
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, errResp := a.tenantUser(ctx, r)
	if errResp != nil {
		return errResp
	}

	uu, err := toBusUpdateUserRole(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "updaterole: userID[%s] uu[%+v]: %s", usr.ID, uu, err)
	}

	return toAppUser(updUsr)
}

// delete removes the authenticated user from the system.
func (a *app) delete(ctx context.Context, _ *http.Request) web.Encoder {
	usr, err := a.currentUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	if err := a.userBus.Delete(ctx, usr); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: userID[%s]: %s", usr.ID, err)
	}

	return nil
}

// query returns a list of users in the caller's tenant with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	// Queries are always scoped to the caller's tenant.
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}
	filter.TenantID = &tenantID

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, page)
}

// queryByID returns a user in the caller's tenant by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, errResp := a.tenantUser(ctx, r)
	if errResp != nil {
		return errResp
	}

	return toAppUser(usr)
}

// me returns the authenticated user's own profile.
func (a *app) me(ctx context.Context, _ *http.Request) web.Encoder {
	usr, err := a.currentUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	return toAppUser(usr)
}

// currentUser loads the profile of the authenticated user.
func (a *app) currentUser(ctx context.Context) (userbus.User, error) {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return userbus.User{}, err
	}

	return a.userBus.QueryByID(ctx, userID)
}

// tenantUser loads the user addressed by the user_id path param and
// checks it belongs to the caller's tenant.
func (a *app) tenantUser(ctx context.Context, r *http.Request) (userbus.User, web.Encoder) {
	id := r.PathValue("user_id")
	userID, err := uuid.Parse(id)
	if err != nil {
		return userbus.User{}, errs.NewFieldErrors("user_id", err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return userbus.User{}, errs.New(errs.NotFound, err)
		}
		return userbus.User{}, errs.Errorf(errs.InternalOnlyLog, "query user: %s", err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return userbus.User{}, errs.Errorf(errs.Internal, "tenant missing in context: %s", err)
	}

	if usr.TenantID != tenantID {
		return userbus.User{}, errs.New(errs.NotFound, userbus.ErrNotFound)
	}

	return usr, nil
}
