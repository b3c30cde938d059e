package tracking

import (
	"fmt"
	"strings"
)

// Update is the notification payload handed to the external messaging
// relay when a package changed enough to be worth telling someone about.
type Update struct {
	TrackingNumber string
	Description    string
	Carrier        string
	OldStatus      string
	NewStatus      string
	LatestEvent    *Event
	NewEventsCount int
	TrackingURL    string
}

// FormatNotification renders an update as plain multi-line text for the
// messaging relay. Deterministic: the same update yields the same text.
func FormatNotification(update Update) string {
	carrier := update.Carrier
	if carrier == "" {
		carrier = "Auto-detect"
	}

	emoji := "📦"
	if update.NewStatus == StatusDelivered {
		emoji = "✅"
	}

	statusChange := update.NewStatus
	if update.OldStatus != update.NewStatus {
		statusChange = update.OldStatus + " → " + update.NewStatus
	}

	lines := []string{
		emoji + " Package Update",
		"📮 Tracking: " + update.TrackingNumber,
		"📦 Carrier: " + carrier,
		"📊 Status: " + statusChange,
	}

	if update.Description != "" {
		lines = append(lines, "📝 Description: "+update.Description)
	}

	if update.LatestEvent != nil {
		line := "📍 Latest: " + update.LatestEvent.Description
		if update.LatestEvent.Location != "" {
			line += " — " + update.LatestEvent.Location
		}
		if update.LatestEvent.Date != "" {
			line += fmt.Sprintf(" (%s)", update.LatestEvent.Date)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "🔗 Track online: "+update.TrackingURL)

	return strings.Join(lines, "\n")
}
