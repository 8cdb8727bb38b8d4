package authapp

import (
	"net/http"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/auth"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	TenantBus *tenantbus.Core
	ActiveKID string
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Auth, cfg.TenantBus, cfg.ActiveKID)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
}
