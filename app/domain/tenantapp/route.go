package tenantapp

import (
	"net/http"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/auth"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/mid"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.TenantBus)

	app.HandlerFunc(http.MethodGet, version, "/tenants/availability", api.availability)

	app.HandlerFunc(http.MethodGet, version, "/tenants/current", api.queryByID, authen, mid.Authorize(cfg.Auth, role.Owner, role.Admin))
	app.HandlerFunc(http.MethodPut, version, "/tenants/current", api.update, authen, mid.Authorize(cfg.Auth, role.Owner))
}
