package wizard

import (
	"context"
	"encoding/json"
	"sync"

	"echome/internal/domain"
)

// MemoryDraftStore keeps serialized drafts in memory. The draft is stored as
// JSON so Load round-trips through the same encoding the durable store uses.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string][]byte)}
}

func (s *MemoryDraftStore) Load(ctx context.Context, userID string) (*domain.GenerationDraft, error) {
	s.mu.Lock()
	raw, ok := s.drafts[userID]
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var draft domain.GenerationDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *MemoryDraftStore) Save(ctx context.Context, userID string, draft *domain.GenerationDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drafts[userID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	delete(s.drafts, userID)
	s.mu.Unlock()
	return nil
}

// MemoryPresetStore keeps presets in creation order per user.
type MemoryPresetStore struct {
	mu      sync.Mutex
	presets map[string][]domain.ContentPreset
}

func NewMemoryPresetStore() *MemoryPresetStore {
	return &MemoryPresetStore{presets: make(map[string][]domain.ContentPreset)}
}

func (s *MemoryPresetStore) List(ctx context.Context, userID string) ([]domain.ContentPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ContentPreset(nil), s.presets[userID]...), nil
}

func (s *MemoryPresetStore) Get(ctx context.Context, userID, presetID string) (*domain.ContentPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.presets[userID] {
		if p.ID == presetID {
			copied := p
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryPresetStore) Create(ctx context.Context, userID string, preset *domain.ContentPreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[userID] = append(s.presets[userID], *preset)
	return nil
}

func (s *MemoryPresetStore) Rename(ctx context.Context, userID, presetID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.presets[userID] {
		if s.presets[userID][i].ID == presetID {
			s.presets[userID][i].Name = name
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *MemoryPresetStore) Delete(ctx context.Context, userID, presetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.presets[userID]
	for i := range list {
		if list[i].ID == presetID {
			s.presets[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var (
	_ domain.DraftStore  = (*MemoryDraftStore)(nil)
	_ domain.PresetStore = (*MemoryPresetStore)(nil)
)
