package domain

import "time"

// SchedulePlatform enumerates cross-posting targets.
type SchedulePlatform string

const (
	PlatformTwitter   SchedulePlatform = "twitter"
	PlatformLinkedIn  SchedulePlatform = "linkedin"
	PlatformInstagram SchedulePlatform = "instagram"
	PlatformFacebook  SchedulePlatform = "facebook"
)

// Schedule records a request to publish a generated piece at a given time.
// Execution is owned by the posting integration, not this service.
type Schedule struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id,omitempty"`
	ContentID     string           `json:"content_id"`
	Platform      SchedulePlatform `json:"platform"`
	ScheduledTime time.Time        `json:"scheduled_time"`
	Metadata      map[string]any   `json:"metadata,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
