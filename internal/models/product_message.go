package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventProductCreated EventType = "product.created"
	EventProductUpdated EventType = "product.updated"
	EventProductDeleted EventType = "product.deleted"
)

// ProductMessage is published after a mutation has been confirmed by the server.
type ProductMessage struct {
	EventID    string        `json:"eventId"`
	Type       EventType     `json:"type"`
	ProductID  string        `json:"productId"`
	Changes    *ProductPatch `json:"changes,omitempty"`
	Product    *Product      `json:"product,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

func NewProductMessage(eventType EventType, productID string) ProductMessage {
	return ProductMessage{
		EventID:    uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	}
}
