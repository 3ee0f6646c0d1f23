package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/sqlinline"
)

// PresetRepositoryPG implements domain.PresetStore on PostgreSQL.
type PresetRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPresetRepository constructs a new preset repository instance.
func NewPresetRepository(sql infra.SQLExecutor) *PresetRepositoryPG {
	return &PresetRepositoryPG{sql: sql}
}

func (r *PresetRepositoryPG) List(ctx context.Context, userID string) ([]domain.ContentPreset, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPresets, userID)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var presets []domain.ContentPreset
	for rows.Next() {
		preset, err := scanPreset(rows.Scan)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *preset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return presets, nil
}

func (r *PresetRepositoryPG) Get(ctx context.Context, userID, presetID string) (*domain.ContentPreset, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectPreset, presetID, userID)
	preset, err := scanPreset(row.Scan)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return preset, nil
}

func (r *PresetRepositoryPG) Create(ctx context.Context, userID string, preset *domain.ContentPreset) error {
	audience, err := json.Marshal(preset.Audience)
	if err != nil {
		return fmt.Errorf("encode audience: %w", err)
	}
	formats, err := json.Marshal(preset.Formats)
	if err != nil {
		return fmt.Errorf("encode formats: %w", err)
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertPreset, preset.ID, userID, preset.Name, audience, formats); err != nil {
		return fmt.Errorf("insert preset: %w", err)
	}
	return nil
}

func (r *PresetRepositoryPG) Rename(ctx context.Context, userID, presetID, name string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QRenamePreset, presetID, userID, name)
	if err != nil {
		return fmt.Errorf("rename preset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PresetRepositoryPG) Delete(ctx context.Context, userID, presetID string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeletePreset, presetID, userID)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPreset(scan func(dest ...any) error) (*domain.ContentPreset, error) {
	var (
		preset   domain.ContentPreset
		audience []byte
		formats  []byte
		created  time.Time
	)
	if err := scan(&preset.ID, &preset.Name, &audience, &formats, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(audience, &preset.Audience); err != nil {
		return nil, fmt.Errorf("decode audience: %w", err)
	}
	if err := json.Unmarshal(formats, &preset.Formats); err != nil {
		return nil, fmt.Errorf("decode formats: %w", err)
	}
	preset.CreatedAt = created
	return &preset, nil
}

var _ domain.PresetStore = (*PresetRepositoryPG)(nil)
