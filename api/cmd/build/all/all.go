// Package all binds all the routes into the single instance build.
package all

import (
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/domain/authapp"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/domain/checkapp"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/domain/registrationapp"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/domain/tenantapp"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/domain/userapp"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/auth"
	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/mux"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus/stores/credentialdb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus/stores/directorybus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	tenantdb "github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus/stores"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus/stores/usercache"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus/stores/userdb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	userBus := userbus.NewCore(usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), time.Minute*5))
	tenantBus := tenantbus.NewCore(cfg.Log, tenantdb.NewStore(cfg.Log, cfg.DB))
	credentialBus := credentialbus.NewCore(credentialdb.NewStore(cfg.Log, cfg.DB))

	registrationBus := registrationbus.NewCore(registrationbus.Config{
		Log:         cfg.Log,
		Registry:    cfg.RegistrationConfig.Registry,
		Tenants:     directorybus.NewTenantDirectory(tenantBus),
		Users:       directorybus.NewUserDirectory(userBus),
		Credentials: directorybus.NewCredentialStore(credentialBus),
		Timeout:     cfg.RegistrationConfig.Timeout,
	})

	authClient := auth.New(auth.Config{
		Log:           cfg.Log,
		UserBus:       userBus,
		CredentialBus: credentialBus,
		KeyLookup:     cfg.AuthConfig.KeyLookup,
		Issuer:        cfg.AuthConfig.Issuer,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	registrationapp.Routes(app, registrationapp.Config{
		RegistrationBus: registrationBus,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		TenantBus: tenantBus,
		ActiveKID: cfg.AuthConfig.ActiveKID,
	})

	tenantapp.Routes(app, tenantapp.Config{
		Auth:      authClient,
		TenantBus: tenantBus,
	})

	userapp.Routes(app, userapp.Config{
		Auth:    authClient,
		UserBus: userBus,
	})
}
