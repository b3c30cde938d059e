package tracking

import "fmt"

// Status names keyed by the provider's numeric status code.
const (
	StatusPending     = "pending" // local-only, before the first check cycle
	StatusNotFound    = "Not Found"
	StatusInTransit   = "In Transit"
	StatusExpired     = "Expired"
	StatusPickUp      = "Pick Up"
	StatusUndelivered = "Undelivered"
	StatusDelivered   = "Delivered"
	StatusAlert       = "Alert"
)

// deliveredStatusCode is the one terminal code: it stamps the delivery date
// and removes the package from future check cycles.
const deliveredStatusCode = 40

var statusNames = map[int]string{
	0:  StatusNotFound,
	10: StatusInTransit,
	20: StatusExpired,
	30: StatusPickUp,
	35: StatusUndelivered,
	40: StatusDelivered,
	50: StatusAlert,
}

var statusEmoji = map[string]string{
	StatusPending:     "⏳",
	StatusNotFound:    "❓",
	StatusInTransit:   "🚚",
	StatusExpired:     "⌛",
	StatusPickUp:      "📬",
	StatusUndelivered: "⚠️",
	StatusDelivered:   "✅",
	StatusAlert:       "🚨",
}

// StatusForCode maps a provider code to its display name. Unknown codes are
// kept visible rather than failing the cycle.
func StatusForCode(code int) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", code)
}

// StatusEmoji returns the display emoji for a status name.
func StatusEmoji(status string) string {
	if emoji, ok := statusEmoji[status]; ok {
		return emoji
	}
	return "📦"
}
