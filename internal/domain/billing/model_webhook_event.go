package billing

import "time"

// WebhookEvent records provider webhook deliveries for idempotent
// processing. The (provider, provider_event_id) pair is unique; a replayed
// event hits the constraint and is acknowledged without reprocessing.
type WebhookEvent struct {
	ID              uint       `gorm:"primaryKey"`
	Provider        string     `gorm:"type:varchar(20);not null;uniqueIndex:ux_webhook_events_provider_event,priority:1"`
	ProviderEventID string     `gorm:"type:varchar(191);not null;uniqueIndex:ux_webhook_events_provider_event,priority:2"`
	EventType       string     `gorm:"type:varchar(100);not null;index"`
	PayloadJSON     string     `gorm:"type:text;not null"`
	ProcessedAt     *time.Time `gorm:"default:null"`
	CreatedAt       time.Time
}
