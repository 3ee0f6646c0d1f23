package wizard

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"echome/internal/domain"
)

// SavePreset snapshots the draft's audience and format selection under a name.
func (w *Wizard) SavePreset(ctx context.Context, name string) (*domain.ContentPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrPresetNameRequired
	}
	preset := &domain.ContentPreset{
		ID:        uuid.NewString(),
		Name:      name,
		Audience:  w.draft.Audience,
		Formats:   append([]domain.ContentFormat(nil), w.draft.SelectedFormats...),
		CreatedAt: w.now(),
	}
	if err := w.presets.Create(ctx, w.userID, preset); err != nil {
		return nil, err
	}
	return preset, nil
}

// LoadPreset overwrites the draft's audience and formats with the saved
// snapshot, replacing any in-progress selections, and persists the draft.
func (w *Wizard) LoadPreset(ctx context.Context, presetID string) error {
	preset, err := w.presets.Get(ctx, w.userID, presetID)
	if err != nil {
		return err
	}
	w.draft.Audience = preset.Audience
	w.draft.SelectedFormats = append([]domain.ContentFormat(nil), preset.Formats...)
	return w.persist(ctx)
}

// RenamePreset is the only mutation a preset supports after creation.
func (w *Wizard) RenamePreset(ctx context.Context, presetID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrPresetNameRequired
	}
	return w.presets.Rename(ctx, w.userID, presetID, name)
}

// DeletePreset removes a preset from the list.
func (w *Wizard) DeletePreset(ctx context.Context, presetID string) error {
	return w.presets.Delete(ctx, w.userID, presetID)
}

// ListPresets returns the flat ordered preset list.
func (w *Wizard) ListPresets(ctx context.Context) ([]domain.ContentPreset, error) {
	return w.presets.List(ctx, w.userID)
}

// WithClock overrides the timestamp source. Tests use it to pin LastUpdated.
func (w *Wizard) WithClock(now func() time.Time) *Wizard {
	w.now = now
	return w
}
