// Package userbus provides business access to user profile domain.
package userbus

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/order"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/page"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/otel"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrUniqueEmail    = errors.New("email is not unique")
	ErrUniqueUsername = errors.New("username is not unique")
)

type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, usr User) error
	Update(ctx context.Context, usr User) error
	Delete(ctx context.Context, usr User) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, userID uuid.UUID) (User, error)
	QueryByEmail(ctx context.Context, email mail.Address) (User, error)
	QueryByUsername(ctx context.Context, uname username.Username) (User, error)
}

type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

func (c *Core) Create(ctx context.Context, nu NewUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.create")
	defer span.End()

	now := time.Now()

	usr := User{
		ID:               uuid.New(),
		TenantID:         nu.TenantID,
		Name:             nu.Name,
		Username:         nu.Username,
		Email:            nu.Email,
		Phone:            nu.Phone,
		JobTitle:         nu.JobTitle,
		Locale:           nu.Locale,
		MarketingConsent: nu.MarketingConsent,
		Role:             nu.Role,
		Enabled:          true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if usr.Locale == "" {
		usr.Locale = "en"
	}

	if err := c.storer.Create(ctx, usr); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	return usr, nil
}

func (c *Core) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.update")
	defer span.End()

	if uu.Name != nil {
		usr.Name = *uu.Name
	}

	if uu.Email != nil {
		usr.Email = *uu.Email
	}

	if uu.Phone != nil {
		usr.Phone = *uu.Phone
	}

	if uu.JobTitle != nil {
		usr.JobTitle = *uu.JobTitle
	}

	if uu.Locale != nil {
		usr.Locale = *uu.Locale
	}

	if uu.MarketingConsent != nil {
		usr.MarketingConsent = *uu.MarketingConsent
	}

	if uu.Role != nil {
		usr.Role = *uu.Role
	}

	if uu.Enabled != nil {
		usr.Enabled = *uu.Enabled
	}

	usr.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, usr); err != nil {
		return User{}, fmt.Errorf("update: %w", err)
	}

	return usr, nil
}

func (c *Core) Delete(ctx context.Context, usr User) error {
	ctx, span := otel.AddSpan(ctx, "business.userbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, usr); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing users.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.query")
	defer span.End()

	users, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return users, nil
}

// Count returns the total number of users.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the user by the specified ID.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByID")
	defer span.End()

	user, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return user, nil
}

// QueryByEmail finds the user by a specified user email.
func (c *Core) QueryByEmail(ctx context.Context, email mail.Address) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByEmail")
	defer span.End()

	user, err := c.storer.QueryByEmail(ctx, email)
	if err != nil {
		return User{}, fmt.Errorf("query: email[%s]: %w", email, err)
	}

	return user, nil
}

// QueryByUsername finds the user by a specified username.
func (c *Core) QueryByUsername(ctx context.Context, uname username.Username) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.queryByUsername")
	defer span.End()

	user, err := c.storer.QueryByUsername(ctx, uname)
	if err != nil {
		return User{}, fmt.Errorf("query: username[%s]: %w", uname, err)
	}

	return user, nil
}
