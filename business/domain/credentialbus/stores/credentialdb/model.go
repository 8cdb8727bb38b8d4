package credentialdb

import (
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus"
	"github.com/google/uuid"
)

type credentialDB struct {
	ID           uuid.UUID `db:"credential_id"`
	UserID       uuid.UUID `db:"user_id"`
	TenantID     uuid.UUID `db:"tenant_id"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func toDBCredential(bus credentialbus.Credential) credentialDB {
	return credentialDB{
		ID:           bus.ID,
		UserID:       bus.UserID,
		TenantID:     bus.TenantID,
		PasswordHash: bus.PasswordHash,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusCredential(db credentialDB) credentialbus.Credential {
	return credentialbus.Credential{
		ID:           db.ID,
		UserID:       db.UserID,
		TenantID:     db.TenantID,
		PasswordHash: db.PasswordHash,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}
}
