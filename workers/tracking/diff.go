package tracking

import "package-tracker-service/workers/tracking/models"

// Event is one provider history entry in normalized form.
type Event struct {
	Date        string
	Location    string
	Description string
}

type eventKey struct {
	date        string
	description string
}

// diffEvents returns the fetched events not present in the stored history.
// Providers do not ship event ids, so (date, description) identifies an
// event; a pair repeated within one payload is emitted once, keeping the
// result insertable under the store's unique event index. Order of the
// fetched slice is preserved (newest first).
func diffEvents(fetched []Event, stored []models.TrackingEvent) []Event {
	seen := make(map[eventKey]struct{}, len(stored))
	for _, ev := range stored {
		seen[eventKey{ev.EventDate, ev.Description}] = struct{}{}
	}

	var fresh []Event
	for _, ev := range fetched {
		key := eventKey{ev.Date, ev.Description}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, ev)
	}
	return fresh
}
