package domain

import "context"

// DraftStore persists the single in-progress draft per user. Save overwrites
// the whole draft; there is no delta persistence.
type DraftStore interface {
	Load(ctx context.Context, userID string) (*GenerationDraft, error)
	Save(ctx context.Context, userID string, draft *GenerationDraft) error
	Clear(ctx context.Context, userID string) error
}

// PresetStore persists the flat ordered preset list per user.
type PresetStore interface {
	List(ctx context.Context, userID string) ([]ContentPreset, error)
	Get(ctx context.Context, userID, presetID string) (*ContentPreset, error)
	Create(ctx context.Context, userID string, preset *ContentPreset) error
	Rename(ctx context.Context, userID, presetID, name string) error
	Delete(ctx context.Context, userID, presetID string) error
}
