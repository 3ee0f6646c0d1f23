package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"echome/internal/domain"
	"echome/internal/wizard"
)

// draftActionRequest is one wizard action. Step carries the client's current
// position so navigation actions resolve against it; the draft itself is the
// persisted truth.
type draftActionRequest struct {
	Action   string                  `json:"action"`
	Step     int                     `json:"step,omitempty"`
	Type     string                  `json:"type,omitempty"`
	Text     string                  `json:"text,omitempty"`
	File     *domain.FileRef         `json:"file,omitempty"`
	URL      string                  `json:"url,omitempty"`
	Audience *domain.AudienceProfile `json:"audience,omitempty"`
	Format   string                  `json:"format,omitempty"`
	Formats  []string                `json:"formats,omitempty"`
}

type draftStateResponse struct {
	Step       int                     `json:"step"`
	CanProceed bool                    `json:"can_proceed"`
	Draft      *domain.GenerationDraft `json:"draft"`
}

func draftState(w *wizard.Wizard) draftStateResponse {
	return draftStateResponse{
		Step:       w.CurrentStep(),
		CanProceed: w.CanProceed(),
		Draft:      w.Draft(),
	}
}

func (a *App) DraftCurrent(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	wiz, err := a.resumeWizard(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load draft failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load draft")
		return
	}
	a.json(w, http.StatusOK, draftState(wiz))
}

func (a *App) DraftAction(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req draftActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	wiz, err := a.resumeWizard(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load draft failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load draft")
		return
	}
	if req.Step > 0 {
		wiz.SetStep(req.Step)
	}

	ctx := r.Context()
	switch req.Action {
	case "set_source_type":
		err = wiz.SetSourceType(ctx, domain.SourceType(req.Type))
	case "set_text":
		err = wiz.SetTextInput(ctx, req.Text)
	case "set_file":
		if req.File == nil {
			a.error(w, http.StatusBadRequest, "bad_request", "file required")
			return
		}
		err = wiz.SetFile(ctx, *req.File)
	case "add_url":
		err = wiz.AddURL(ctx, req.URL)
	case "remove_url":
		err = wiz.RemoveURL(ctx, req.URL)
	case "toggle_knowledge_base":
		err = wiz.ToggleKnowledgeBase(ctx)
	case "set_audience":
		if req.Audience == nil {
			a.error(w, http.StatusBadRequest, "bad_request", "audience required")
			return
		}
		err = wiz.SetAudience(ctx, *req.Audience)
	case "toggle_format":
		err = wiz.ToggleFormat(ctx, domain.ContentFormat(req.Format))
	case "set_formats":
		formats := make([]domain.ContentFormat, 0, len(req.Formats))
		for _, f := range req.Formats {
			formats = append(formats, domain.ContentFormat(f))
		}
		err = wiz.SetFormats(ctx, formats)
	case "clear_formats":
		err = wiz.ClearFormats(ctx)
	case "next_step":
		wiz.NextStep()
	case "previous_step":
		wiz.PreviousStep()
	case "set_step":
		// Step already applied above.
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unknown action")
		return
	}
	if err != nil {
		a.draftError(w, err)
		return
	}
	a.json(w, http.StatusOK, draftState(wiz))
}

func (a *App) DraftReset(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	wiz, err := a.resumeWizard(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load draft")
		return
	}
	if err := wiz.Reset(r.Context()); err != nil {
		a.Logger.Error().Err(err).Msg("reset draft failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to reset draft")
		return
	}
	a.json(w, http.StatusOK, draftState(wiz))
}

func (a *App) draftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		a.error(w, http.StatusBadRequest, "invalid_url", "url must be absolute http(s)")
	case errors.Is(err, domain.ErrInvalidSourceConfig):
		a.error(w, http.StatusBadRequest, "invalid_source", "invalid source configuration")
	case errors.Is(err, domain.ErrPresetNameRequired):
		a.error(w, http.StatusBadRequest, "bad_request", "preset name required")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "not found")
	default:
		a.Logger.Error().Err(err).Msg("draft mutation failed")
		a.error(w, http.StatusInternalServerError, "internal", "draft update failed")
	}
}
