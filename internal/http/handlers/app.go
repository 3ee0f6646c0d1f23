package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/middleware"
	"echome/internal/storage"
	"echome/internal/wizard"
)

// App carries the shared dependencies for every HTTP handler.
type App struct {
	Config  infra.Config
	Logger  infra.Logger
	SQL     infra.SQLExecutor
	Drafts  domain.DraftStore
	Presets domain.PresetStore
	Files   *storage.FileStore
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, map[string]string{"error": slug, "message": msg})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// resumeWizard reconstructs the caller's wizard from the persisted draft.
func (a *App) resumeWizard(ctx context.Context, userID string) (*wizard.Wizard, error) {
	return wizard.Resume(ctx, userID, a.Drafts, a.Presets)
}
