package credentialbus

import (
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
	"github.com/google/uuid"
)

// Credential represents the stored login secret for a user.
type Credential struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	TenantID     uuid.UUID
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCredential contains information needed to create a new credential.
type NewCredential struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Password password.Password
}

// UpdateCredential contains information needed to rotate a credential.
type UpdateCredential struct {
	Password password.Password
}
