package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"echome/internal/http/handlers"
	"echome/internal/infra/geoip"
	"echome/internal/middleware"
)

// NewRouter assembles the HTTP surface. The geo resolver may be nil; locale
// detection then falls back to headers and the configured default.
func NewRouter(app *handlers.App, geo geoip.CountryResolver) http.Handler {
	r := chi.NewRouter()

	var lookup middleware.CountryLookup
	if geo != nil {
		lookup = geo.CountryCode
	}

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.CORSOrigins),
		middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute),
		middleware.I18N(app.Config.DefaultLocale, lookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/auth/token", app.AuthToken)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.Config.JWTSecret))

		r.Route("/v1/drafts/current", func(r chi.Router) {
			r.Get("/", app.DraftCurrent)
			r.Post("/actions", app.DraftAction)
			r.Delete("/", app.DraftReset)
		})

		r.Route("/v1/presets", func(r chi.Router) {
			r.Get("/", app.PresetsList)
			r.Post("/", app.PresetsCreate)
			r.Put("/{preset_id}", app.PresetRename)
			r.Delete("/{preset_id}", app.PresetDelete)
			r.Post("/{preset_id}/apply", app.PresetApply)
		})

		r.Route("/v1/kits", func(r chi.Router) {
			r.Post("/generate", app.KitGenerate)
			r.Get("/{job_id}/status", app.KitStatus)
			r.Get("/{job_id}/outputs", app.KitOutputs)
			r.Get("/{job_id}/zip", app.KitZip)
		})

		r.Route("/v1/batches", func(r chi.Router) {
			r.Post("/import", app.BatchImport)
			r.Get("/{batch_id}/status", app.BatchStatus)
		})

		r.Route("/v1/schedules", func(r chi.Router) {
			r.Get("/", app.SchedulesList)
			r.Post("/", app.SchedulesCreate)
		})

		r.Post("/v1/uploads", app.Upload)
		r.Get("/v1/stats/summary", app.StatsSummary)
	})

	return r
}
