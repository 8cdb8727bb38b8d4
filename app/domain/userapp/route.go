package userapp

import (
	"net/http"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/auth"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/mid"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	manageUsers := mid.Authorize(cfg.Auth, role.Owner, role.Admin)

	api := newApp(cfg.Auth, cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, manageUsers)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, authen, manageUsers)
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, authen, manageUsers)
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}/role", api.updateRole, authen, mid.Authorize(cfg.Auth, role.Owner))

	app.HandlerFunc(http.MethodGet, version, "/me", api.me, authen)
	app.HandlerFunc(http.MethodPut, version, "/me", api.update, authen)
	app.HandlerFunc(http.MethodDelete, version, "/me", api.delete, authen)
}
