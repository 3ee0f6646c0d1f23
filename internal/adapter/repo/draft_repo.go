package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/sqlinline"
)

// DraftRepositoryPG implements domain.DraftStore on PostgreSQL. The whole
// draft is serialized into a single jsonb column and overwritten on every
// save, which keeps resume trivially correct at the cost of write volume.
type DraftRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDraftRepository constructs a new draft repository instance.
func NewDraftRepository(sql infra.SQLExecutor) *DraftRepositoryPG {
	return &DraftRepositoryPG{sql: sql}
}

func (r *DraftRepositoryPG) Load(ctx context.Context, userID string) (*domain.GenerationDraft, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDraft, userID)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var draft domain.GenerationDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

func (r *DraftRepositoryPG) Save(ctx context.Context, userID string, draft *domain.GenerationDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QUpsertDraft, userID, raw); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (r *DraftRepositoryPG) Clear(ctx context.Context, userID string) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QDeleteDraft, userID); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

var _ domain.DraftStore = (*DraftRepositoryPG)(nil)
