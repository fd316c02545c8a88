// Package domain contains core concepts of the messaging system.
// No storage, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable direct message. Once persisted it is
// never updated or deleted; ID and CreatedAt are assigned by the store.
type Message struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	SenderID   string    `json:"sender"`
	ReceiverID string    `json:"receiver"`
	CreatedAt  time.Time `json:"createdAt"`
}
