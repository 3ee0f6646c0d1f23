package domain

import "time"

// ContentPreset is a named, reusable snapshot of audience and format
// selections. Immutable once created except for rename.
type ContentPreset struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Audience  AudienceProfile `json:"audience"`
	Formats   []ContentFormat `json:"formats"`
	CreatedAt time.Time       `json:"created_at"`
}
