package models

import "time"

// Event represents a loggable action or alert in the inventory system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "product.created", "stock.alert"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	ProductID *int64    `json:"productId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
