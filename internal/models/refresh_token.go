package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken records an issued refresh token, keyed by the subject it was
// issued to. Only a sha256 hash of the token string is stored. A subject may
// hold several records at once (one per active session); records are never
// expired here because the token's own exp claim bounds its validity.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Subject   string    `gorm:"size:255;not null;index" json:"-"`
	TokenHash string    `gorm:"size:64;not null;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
