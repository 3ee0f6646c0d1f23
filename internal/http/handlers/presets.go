package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type presetCreateRequest struct {
	Name string `json:"name"`
}

type presetRenameRequest struct {
	Name string `json:"name"`
}

func (a *App) PresetsList(w http.ResponseWriter, r *http.Request) {
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
	presets, err := wiz.ListPresets(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list presets failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list presets")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"presets": presets})
}

// PresetsCreate snapshots the current draft's audience and formats under a
// name.
func (a *App) PresetsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req presetCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	wiz, err := a.resumeWizard(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load draft")
		return
	}
	preset, err := wiz.SavePreset(r.Context(), req.Name)
	if err != nil {
		a.draftError(w, err)
		return
	}
	a.json(w, http.StatusCreated, preset)
}

func (a *App) PresetRename(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	presetID := chi.URLParam(r, "preset_id")
	var req presetRenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	wiz, err := a.resumeWizard(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load draft")
		return
	}
	if err := wiz.RenamePreset(r.Context(), presetID, req.Name); err != nil {
		a.draftError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) PresetDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	presetID := chi.URLParam(r, "preset_id")
	wiz, err := a.resumeWizard(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load draft")
		return
	}
	if err := wiz.DeletePreset(r.Context(), presetID); err != nil {
		a.draftError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PresetApply loads a preset's audience and formats into the current draft,
// overwriting both.
func (a *App) PresetApply(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	presetID := chi.URLParam(r, "preset_id")
	wiz, err := a.resumeWizard(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load draft")
		return
	}
	if err := wiz.LoadPreset(r.Context(), presetID); err != nil {
		a.draftError(w, err)
		return
	}
	a.json(w, http.StatusOK, draftState(wiz))
}
