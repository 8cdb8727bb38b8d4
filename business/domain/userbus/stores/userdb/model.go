package userdb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/phone"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/role"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/google/uuid"
)

type userDB struct {
	ID               uuid.UUID      `db:"user_id"`
	TenantID         uuid.UUID      `db:"tenant_id"`
	Name             string         `db:"name"`
	Username         string         `db:"username"`
	Email            string         `db:"email"`
	Phone            sql.NullString `db:"phone"`
	JobTitle         sql.NullString `db:"job_title"`
	Locale           string         `db:"locale"`
	MarketingConsent bool           `db:"marketing_consent"`
	Role             string         `db:"role"`
	Enabled          bool           `db:"enabled"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func toDBUser(bus userbus.User) userDB {
	return userDB{
		ID:       bus.ID,
		TenantID: bus.TenantID,
		Name:     bus.Name.String(),
		Username: bus.Username.String(),
		Email:    bus.Email.Address,
		Phone: phone.ToSQLNullString(bus.Phone),
		JobTitle: sql.NullString{
			String: bus.JobTitle.String(),
			Valid:  bus.JobTitle.Valid(),
		},
		Locale:           bus.Locale,
		MarketingConsent: bus.MarketingConsent,
		Role:             bus.Role.String(),
		Enabled:          bus.Enabled,
		CreatedAt:        bus.CreatedAt.UTC(),
		UpdatedAt:        bus.UpdatedAt.UTC(),
	}
}

func toBusUser(db userDB) (userbus.User, error) {
	addr := mail.Address{
		Address: db.Email,
	}

	nme, err := name.Parse(db.Name)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse name: %w", err)
	}

	uname, err := username.Parse(db.Username)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse username: %w", err)
	}

	var phn phone.Null
	if db.Phone.Valid {
		phn, err = phone.ParseNull(db.Phone.String)
		if err != nil {
			return userbus.User{}, fmt.Errorf("parse phone: %w", err)
		}
	}

	var jobTitle name.Null
	if db.JobTitle.Valid {
		jobTitle, err = name.ParseNull(db.JobTitle.String)
		if err != nil {
			return userbus.User{}, fmt.Errorf("parse job title: %w", err)
		}
	}

	rle, err := role.Parse(db.Role)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse role: %w", err)
	}

	bus := userbus.User{
		ID:               db.ID,
		TenantID:         db.TenantID,
		Name:             nme,
		Username:         uname,
		Email:            addr,
		Phone:            phn,
		JobTitle:         jobTitle,
		Locale:           db.Locale,
		MarketingConsent: db.MarketingConsent,
		Role:             rle,
		Enabled:          db.Enabled,
		CreatedAt:        db.CreatedAt.In(time.Local),
		UpdatedAt:        db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
