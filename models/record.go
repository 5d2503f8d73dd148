package models

import (
	"time"
)

// ProfileRecord is the durable row backing one user profile. Data holds the
// full serialized UserProfile; the blob is rewritten whole on every mutation.
type ProfileRecord struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	Data      string    `json:"data" gorm:"type:jsonb;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ContentItem caches a payload fetched from the content-generation service,
// e.g. the daily challenge word. One row per (kind, day) for daily content.
type ContentItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Kind      string    `json:"kind" gorm:"not null;uniqueIndex:idx_content_kind_lang_day"`
	Language  string    `json:"language" gorm:"size:16;uniqueIndex:idx_content_kind_lang_day"`
	Payload   string    `json:"payload" gorm:"type:jsonb"`
	Day       string    `json:"day" gorm:"uniqueIndex:idx_content_kind_lang_day"` // YYYY-MM-DD for daily content, empty otherwise
	FetchedAt time.Time `json:"fetched_at" gorm:"autoCreateTime"`
}
