package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/sqlinline"
)

type batchImportRequest struct {
	URLs []string `json:"urls"`
}

type batchImportResponse struct {
	BatchID    string `json:"batch_id"`
	Status     string `json:"status"`
	TotalItems int    `json:"total_items"`
}

type batchStatusResponse struct {
	domain.BatchJob
	ProgressPercent int `json:"progress_percent"`
}

const maxBatchItems = 50

// BatchImport creates a batch of generation jobs, one per source URL. Every
// URL is validated before anything is persisted.
func (a *App) BatchImport(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req batchImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.URLs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "urls required")
		return
	}
	if len(req.URLs) > maxBatchItems {
		a.error(w, http.StatusBadRequest, "bad_request", "too many urls")
		return
	}
	for _, raw := range req.URLs {
		if err := domain.ValidateURL(raw); err != nil {
			a.error(w, http.StatusBadRequest, "invalid_url", "url must be absolute http(s)")
			return
		}
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertBatch, userID, len(req.URLs))
	var batchID string
	if err := row.Scan(&batchID); err != nil {
		a.Logger.Error().Err(err).Msg("insert batch failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create batch")
		return
	}
	for i, raw := range req.URLs {
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QInsertBatchItem, batchID, i+1, raw); err != nil {
			a.Logger.Error().Err(err).Str("batch_id", batchID).Msg("insert batch item failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to create batch items")
			return
		}
	}
	a.recordUsage(r, userID, batchID, "BATCH_IMPORT", map[string]any{"total_items": len(req.URLs)})
	a.json(w, http.StatusAccepted, batchImportResponse{
		BatchID:    batchID,
		Status:     string(domain.JobStatusProcessing),
		TotalItems: len(req.URLs),
	})
}

func (a *App) BatchStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	batchID := chi.URLParam(r, "batch_id")
	if batchID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "batch_id required")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectBatch, batchID, userID)
	var batch domain.BatchJob
	var status string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&batch.BatchID, &batch.UserID, &status, &batch.TotalItems,
		&batch.ProcessedItems, &batch.CompletedItems, &batch.FailedItems, &createdAt, &updatedAt); err != nil {
		if infra.IsNoRows(err) {
			a.error(w, http.StatusNotFound, "not_found", "batch not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load batch failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load batch")
		return
	}
	batch.Status = domain.JobStatus(status)
	batch.CreatedAt = createdAt
	batch.UpdatedAt = updatedAt

	rows, err := a.SQL.Query(r.Context(), sqlinline.QSelectBatchItems, batchID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load batch items failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load batch items")
		return
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.BatchItem
		var itemStatus string
		var jobID, itemErr *string
		if err := rows.Scan(&item.Order, &item.SourceURL, &itemStatus, &jobID, &itemErr); err != nil {
			continue
		}
		item.Status = domain.BatchItemStatus(itemStatus)
		if jobID != nil {
			item.JobID = *jobID
		}
		if itemErr != nil {
			item.Error = *itemErr
		}
		batch.ItemDetails = append(batch.ItemDetails, item)
	}
	batch.SortItems()
	a.json(w, http.StatusOK, batchStatusResponse{BatchJob: batch, ProgressPercent: batch.ProgressPercent()})
}
