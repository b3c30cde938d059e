package models

import "time"

// TrackingEvent is an append-only history entry owned by one package.
// Providers do not supply opaque event ids, so (package_id, event_date,
// description) is the deduplication key. Rows are never updated or deleted.
type TrackingEvent struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	PackageID   uint   `gorm:"not null;uniqueIndex:idx_event_identity"`
	EventDate   string `gorm:"size:100;uniqueIndex:idx_event_identity"` // provider-supplied, not guaranteed parseable
	Location    string `gorm:"size:256"`
	Description string `gorm:"size:512;uniqueIndex:idx_event_identity"`
	StatusCode  string `gorm:"size:10"`
	CreatedAt   time.Time
}
