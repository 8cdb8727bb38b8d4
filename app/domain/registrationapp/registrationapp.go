// Package registrationapp maintains the app layer api for the company
// registration flow.
package registrationapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mukeshmehta2041/crm-micro-sub000/app/sdk/errs"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/web"
)

type app struct {
	registrationBus *registrationbus.Core
}

func newApp(registrationBus *registrationbus.Core) *app {
	return &app{
		registrationBus: registrationBus,
	}
}

// register handles the public company sign-up request.
func (a *app) register(ctx context.Context, r *http.Request) web.Encoder {
	var app NewRegistration
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nr, err := toBusNewRegistration(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	reg, err := a.registrationBus.Register(ctx, nr)
	if err != nil {
		return toErrResponse(err)
	}

	return toAppRegistration(reg)
}

// toErrResponse maps the orchestrator's error kinds to client facing
// status codes. Messages stay short and never carry identifiers of
// partially created resources, but every abort that left resources
// behind keeps the partial state warning whatever its kind.
func toErrResponse(err error) web.Encoder {
	partial := errors.Is(err, registrationbus.ErrPartialState)

	switch {
	case errors.Is(err, registrationbus.ErrDuplicateInProgress):
		return errs.New(errs.Aborted, errors.New("a registration for this email and company is already in progress"))

	case errors.Is(err, registrationbus.ErrValidation):
		return errs.New(errs.InvalidArgument, err)

	case errors.Is(err, registrationbus.ErrDependencyUnavailable):
		if partial {
			return errs.New(errs.Unavailable, errors.New("a required service is unavailable, partial state may exist and will be reconciled"))
		}
		return errs.New(errs.Unavailable, errors.New("a required service is unavailable, try again later"))

	case errors.Is(err, registrationbus.ErrDependencyConflict):
		if partial {
			return errs.New(errs.Aborted, errors.New("a conflicting registration was accepted first, partial state may exist and will be reconciled"))
		}
		return errs.New(errs.Aborted, errors.New("a conflicting registration was accepted first, try again"))

	default:
		if partial {
			return errs.Errorf(errs.Internal, "registration failed, partial state may exist and will be reconciled")
		}
		return errs.Errorf(errs.InternalOnlyLog, "register: %s", err)
	}
}
