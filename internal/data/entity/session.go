package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session tracks an issued token so it can be revoked before expiry.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	TokenID   string     `db:"token_id"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func (s *Session) IsValid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
