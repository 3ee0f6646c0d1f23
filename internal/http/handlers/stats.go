package handlers

import (
	"net/http"

	"echome/internal/sqlinline"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QStatsSummary)
	var kitsTotal, kitsCompleted, kitsFailed, kitsLast24, batchesTotal, schedulesTotal int64
	if err := row.Scan(&kitsTotal, &kitsCompleted, &kitsFailed, &kitsLast24, &batchesTotal, &schedulesTotal); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"kits_total":      kitsTotal,
		"kits_completed":  kitsCompleted,
		"kits_failed":     kitsFailed,
		"kits_last_24h":   kitsLast24,
		"batches_total":   batchesTotal,
		"schedules_total": schedulesTotal,
	})
}
