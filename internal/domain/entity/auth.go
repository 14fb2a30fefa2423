package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the server-side session record. Only the sha256 hex digest
// of the issued token is stored; deleting the row revokes the session.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the stored session has passed its expiry.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
