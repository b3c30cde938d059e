package models

import "time"

// Package is a single tracked shipment. The tracking number is immutable
// once created; a deactivated package keeps its row and event history so a
// later re-add reactivates the same identity instead of duplicating it.
type Package struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	TrackingNumber string `gorm:"size:100;not null;unique"`
	Carrier        string `gorm:"size:50"`
	CarrierCode    int    // 0 = let the provider auto-detect
	Description    string `gorm:"size:256"`
	Status         string `gorm:"size:50;not null;default:pending"`
	LastEvent      string `gorm:"size:512"`
	LastEventDate  string `gorm:"size:100"`
	LastCheckedAt  *time.Time
	DeliveredAt    *time.Time
	RawResponse    []byte `gorm:"type:blob"` // last raw provider payload, kept for debugging
	Registered     bool   `gorm:"not null;default:false"`
	Active         bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
