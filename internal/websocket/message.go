package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Actions pushed to connected inventory screens.
const (
	ActionInventoryChanged = "inventory_changed"
	ActionLowStockAlert    = "low_stock_alert"
)

// NewMessage marshals an action/payload pair for broadcast. Marshal errors
// cannot happen for the payload types used here, so they yield nil.
func NewMessage(action string, payload interface{}) []byte {
	b, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		return nil
	}
	return b
}
