package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/middleware"
	"echome/internal/sqlinline"
	"echome/pkg/zip"
)

type jobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// KitGenerate submits the caller's current draft as a generation job. The
// draft stays in place; it is only cleared client-side once the job is
// confirmed COMPLETED.
func (a *App) KitGenerate(w http.ResponseWriter, r *http.Request) {
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
	locale := middleware.LocaleFromContext(r.Context())
	req, err := wiz.BuildSubmission(locale)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFormats):
			a.error(w, http.StatusBadRequest, "no_formats", "select at least one content type")
		case errors.Is(err, domain.ErrInvalidSourceConfig):
			a.error(w, http.StatusBadRequest, "invalid_source", "invalid source configuration")
		default:
			a.error(w, http.StatusBadRequest, "bad_request", "draft is not submittable")
		}
		return
	}
	reqBytes, err := json.Marshal(req)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to encode request")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QEnqueueKitJob, userID, string(req.InputType), reqBytes)
	var jobID string
	if err := row.Scan(&jobID); err != nil {
		a.Logger.Error().Err(err).Msg("enqueue kit job failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue job")
		return
	}
	a.recordUsage(r, userID, jobID, "KIT_SUBMIT", map[string]any{
		"input_type": req.InputType,
		"formats":    len(req.SelectedContentTypes),
	})
	a.json(w, http.StatusAccepted, jobResponse{JobID: jobID, Status: string(domain.JobStatusInitiated)})
}

func (a *App) KitStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "job_id required")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectKitStatus, jobID, userID)
	var id, uid, inputType, status string
	var progress, outputs []byte
	var errMsg *string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &uid, &inputType, &status, &progress, &outputs, &errMsg, &createdAt, &updatedAt); err != nil {
		if infra.IsNoRows(err) {
			a.error(w, http.StatusNotFound, "not_found", "job not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load kit status failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load job")
		return
	}
	resp := map[string]any{
		"job_id":     id,
		"input_type": inputType,
		"status":     status,
		"created_at": createdAt,
		"updated_at": updatedAt,
	}
	if len(progress) > 0 {
		resp["progress"] = json.RawMessage(progress)
	}
	if len(outputs) > 0 {
		resp["outputs"] = json.RawMessage(outputs)
	}
	if errMsg != nil && *errMsg != "" {
		resp["error_message"] = *errMsg
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) KitOutputs(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "job_id required")
		return
	}
	outputs, err := a.loadOutputs(r, jobID, userID)
	if err != nil {
		if infra.IsNoRows(err) {
			a.error(w, http.StatusNotFound, "not_found", "job not found or not completed")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load outputs")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"job_id": jobID, "outputs": json.RawMessage(outputs)})
}

// KitZip exports a completed kit as a zip of text files, one per format, list
// formats as numbered files in a folder.
func (a *App) KitZip(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "job_id required")
		return
	}
	raw, err := a.loadOutputs(r, jobID, userID)
	if err != nil {
		if infra.IsNoRows(err) {
			a.error(w, http.StatusNotFound, "not_found", "job not found or not completed")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load outputs")
		return
	}
	var outputs map[domain.ContentFormat]domain.OutputPayload
	if err := json.Unmarshal(raw, &outputs); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "malformed outputs")
		return
	}
	archive := zip.Archive(outputEntries(outputs))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=kit-%s.zip", jobID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) loadOutputs(r *http.Request, jobID, userID string) ([]byte, error) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectKitOutputs, jobID, userID)
	var outputs []byte
	if err := row.Scan(&outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// outputEntries flattens kit outputs into archive files in a stable order.
func outputEntries(outputs map[domain.ContentFormat]domain.OutputPayload) []zip.Entry {
	formats := make([]domain.ContentFormat, 0, len(outputs))
	for f := range outputs {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })

	var entries []zip.Entry
	for _, f := range formats {
		payload := outputs[f]
		if len(payload.Items) > 0 {
			for i, item := range payload.Items {
				entries = append(entries, zip.Entry{
					Name: fmt.Sprintf("%s/%d.txt", f, i+1),
					Data: []byte(item),
				})
			}
			continue
		}
		entries = append(entries, zip.Entry{
			Name: fmt.Sprintf("%s.md", f),
			Data: []byte(payload.Text),
		})
	}
	return entries
}

func (a *App) recordUsage(r *http.Request, userID, requestID, eventType string, props map[string]any) {
	propBytes, _ := json.Marshal(props)
	var reqID any
	if requestID != "" {
		reqID = requestID
	}
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QInsertUsageEvent, userID, reqID, eventType, true, 0, propBytes); err != nil {
		a.Logger.Error().Err(err).Msg("log usage failed")
	}
}
