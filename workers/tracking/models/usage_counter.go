package models

// UsageCounter holds one calendar month's registration usage for a provider.
// Created lazily on the first registration of the month.
type UsageCounter struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	APIName           string `gorm:"size:50;not null;uniqueIndex:idx_usage_api_month"`
	Month             string `gorm:"size:7;not null;uniqueIndex:idx_usage_api_month"` // UTC "YYYY-MM"
	RegistrationsUsed int    `gorm:"not null;default:0"`
}
