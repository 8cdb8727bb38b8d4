package registrationapp

import (
	"net/http"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	RegistrationBus *registrationbus.Core
}

// Routes adds specific routes for this group. Registration is the
// public entry point, no authentication applies.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.RegistrationBus)

	app.HandlerFunc(http.MethodPost, version, "/registrations", api.register)
}
