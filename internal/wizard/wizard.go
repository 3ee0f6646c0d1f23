// Package wizard implements the four-step generation flow backed by a single
// resumable draft. The container is explicitly injected; there is no global
// state. Every mutating action persists the full draft before returning so an
// interrupted session can resume exactly where it left off.
package wizard

import (
	"context"
	"errors"
	"strings"
	"time"

	"echome/internal/domain"
)

// Wizard steps, strictly linear.
const (
	StepSource   = 1
	StepAudience = 2
	StepFormat   = 3
	StepGenerate = 4
)

// Wizard owns one user's draft and its position in the flow.
type Wizard struct {
	userID  string
	step    int
	draft   *domain.GenerationDraft
	drafts  domain.DraftStore
	presets domain.PresetStore
	now     func() time.Time
}

// New constructs a wizard with a fresh empty draft.
func New(userID string, drafts domain.DraftStore, presets domain.PresetStore) *Wizard {
	return &Wizard{
		userID:  userID,
		step:    StepSource,
		draft:   domain.NewDraft(),
		drafts:  drafts,
		presets: presets,
		now:     time.Now,
	}
}

// Resume constructs a wizard from the persisted draft, or an empty one when
// no draft exists yet.
func Resume(ctx context.Context, userID string, drafts domain.DraftStore, presets domain.PresetStore) (*Wizard, error) {
	w := New(userID, drafts, presets)
	draft, err := drafts.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return w, nil
		}
		return nil, err
	}
	w.draft = draft
	return w, nil
}

// Draft exposes the current draft for rendering.
func (w *Wizard) Draft() *domain.GenerationDraft { return w.draft }

// CurrentStep returns the bounded step index in [1,4].
func (w *Wizard) CurrentStep() int { return w.step }

// SetStep moves to an arbitrary step. Values outside [1,4] are a no-op.
func (w *Wizard) SetStep(step int) {
	if step < StepSource || step > StepGenerate {
		return
	}
	w.step = step
}

// NextStep advances one step when the current step's gate passes. It clamps
// at the final step.
func (w *Wizard) NextStep() {
	if !w.CanProceed() {
		return
	}
	if w.step < StepGenerate {
		w.step++
	}
}

// PreviousStep moves back one step, clamping at the first.
func (w *Wizard) PreviousStep() {
	if w.step > StepSource {
		w.step--
	}
}

// CanProceed reports whether the current step's continue gate passes. The
// audience step is permissive; source and format are not.
func (w *Wizard) CanProceed() bool {
	switch w.step {
	case StepSource:
		return w.draft.HasSource()
	case StepAudience:
		return true
	case StepFormat:
		return len(w.draft.SelectedFormats) > 0
	case StepGenerate:
		return true
	}
	return false
}

func (w *Wizard) persist(ctx context.Context) error {
	w.draft.LastUpdated = w.now()
	return w.drafts.Save(ctx, w.userID, w.draft)
}

// SetSourceType switches the active source branch. The previously populated
// branch is zeroed so exactly one branch stays populated.
func (w *Wizard) SetSourceType(ctx context.Context, t domain.SourceType) error {
	switch t {
	case domain.SourceTypeText, domain.SourceTypeFile, domain.SourceTypeURL, domain.SourceTypeKnowledgeBase:
	default:
		return domain.ErrInvalidSourceConfig
	}
	if w.draft.SourceType == t {
		return w.persist(ctx)
	}
	w.draft.SourceType = t
	w.draft.Source = domain.SourceInput{Kind: t}
	if t == domain.SourceTypeKnowledgeBase {
		w.draft.UseKnowledgeBase = true
	}
	return w.persist(ctx)
}

// SetTextInput replaces the free-text source.
func (w *Wizard) SetTextInput(ctx context.Context, text string) error {
	w.draft.Source = domain.SourceInput{Kind: w.draft.SourceType, Text: text}
	return w.persist(ctx)
}

// SetFile records a completed upload as the file source.
func (w *Wizard) SetFile(ctx context.Context, ref domain.FileRef) error {
	if ref.ID == "" {
		return domain.ErrEmptySource
	}
	w.draft.Source = domain.SourceInput{Kind: domain.SourceTypeFile, File: &ref}
	return w.persist(ctx)
}

// AddURL validates and appends a source URL. Duplicates are silently ignored
// (set semantics); invalid URLs are rejected and never stored.
func (w *Wizard) AddURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if err := domain.ValidateURL(raw); err != nil {
		return err
	}
	for _, have := range w.draft.Source.URLs {
		if have == raw {
			return nil
		}
	}
	urls := append(append([]string(nil), w.draft.Source.URLs...), raw)
	w.draft.Source = domain.SourceInput{Kind: domain.SourceTypeURL, URLs: urls}
	return w.persist(ctx)
}

// RemoveURL drops a URL from the list; unknown values are a no-op.
func (w *Wizard) RemoveURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	urls := w.draft.Source.URLs[:0:0]
	for _, have := range w.draft.Source.URLs {
		if have != raw {
			urls = append(urls, have)
		}
	}
	w.draft.Source = domain.SourceInput{Kind: domain.SourceTypeURL, URLs: urls}
	return w.persist(ctx)
}

// ToggleKnowledgeBase flips the knowledge-base flag, independent of source type.
func (w *Wizard) ToggleKnowledgeBase(ctx context.Context) error {
	w.draft.UseKnowledgeBase = !w.draft.UseKnowledgeBase
	return w.persist(ctx)
}

// SetAudience replaces the audience profile. Any non-default value is
// acceptable; the audience step has no hard validation.
func (w *Wizard) SetAudience(ctx context.Context, profile domain.AudienceProfile) error {
	w.draft.Audience = profile
	return w.persist(ctx)
}

// ToggleFormat adds the format when absent and removes it when present.
func (w *Wizard) ToggleFormat(ctx context.Context, f domain.ContentFormat) error {
	if w.draft.HasFormat(f) {
		kept := w.draft.SelectedFormats[:0:0]
		for _, have := range w.draft.SelectedFormats {
			if have != f {
				kept = append(kept, have)
			}
		}
		w.draft.SelectedFormats = kept
	} else {
		w.draft.SelectedFormats = append(append([]domain.ContentFormat(nil), w.draft.SelectedFormats...), f)
	}
	return w.persist(ctx)
}

// SetFormats replaces the selection wholesale (select-all uses AllFormats).
func (w *Wizard) SetFormats(ctx context.Context, formats []domain.ContentFormat) error {
	seen := make(map[domain.ContentFormat]struct{}, len(formats))
	deduped := make([]domain.ContentFormat, 0, len(formats))
	for _, f := range formats {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		deduped = append(deduped, f)
	}
	w.draft.SelectedFormats = deduped
	return w.persist(ctx)
}

// ClearFormats empties the selection.
func (w *Wizard) ClearFormats(ctx context.Context) error {
	w.draft.SelectedFormats = nil
	return w.persist(ctx)
}

// Reset discards the draft and returns to the first step. Used on explicit
// reset and after a confirmed COMPLETED generation.
func (w *Wizard) Reset(ctx context.Context) error {
	w.draft = domain.NewDraft()
	w.step = StepSource
	return w.drafts.Clear(ctx, w.userID)
}
