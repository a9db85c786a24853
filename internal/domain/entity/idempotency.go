package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey records the outcome of a side-effecting request (an
// invoice print) so a client retry replays it instead of printing twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_subject"`
	Subject      string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_subject"`
	Endpoint     string    `gorm:"size:255;not null"`
	ResponseCode int       `gorm:"not null"`
	ContentType  string    `gorm:"size:100"`
	ResponseBody []byte    `gorm:"type:bytea"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "invoice_idempotency_keys"
}

// IsExpired reports whether the key may be reused for a new request
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
