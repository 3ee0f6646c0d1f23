package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"echome/internal/domain"
	"echome/internal/sqlinline"
)

type scheduleCreateRequest struct {
	ContentID     string         `json:"content_id"`
	Platform      string         `json:"platform"`
	ScheduledTime time.Time      `json:"scheduled_time"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

var schedulePlatforms = map[domain.SchedulePlatform]struct{}{
	domain.PlatformTwitter:   {},
	domain.PlatformLinkedIn:  {},
	domain.PlatformInstagram: {},
	domain.PlatformFacebook:  {},
}

func (a *App) SchedulesCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req scheduleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ContentID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content_id required")
		return
	}
	if _, ok := schedulePlatforms[domain.SchedulePlatform(req.Platform)]; !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported platform")
		return
	}
	if req.ScheduledTime.IsZero() || req.ScheduledTime.Before(time.Now()) {
		a.error(w, http.StatusBadRequest, "bad_request", "scheduled_time must be in the future")
		return
	}
	var metaBytes []byte
	if req.Metadata != nil {
		metaBytes, _ = json.Marshal(req.Metadata)
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertSchedule,
		userID, req.ContentID, req.Platform, req.ScheduledTime, metaBytes)
	var id string
	if err := row.Scan(&id); err != nil {
		a.Logger.Error().Err(err).Msg("insert schedule failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create schedule")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *App) SchedulesList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListSchedules, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list schedules failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list schedules")
		return
	}
	defer rows.Close()
	items := []domain.Schedule{}
	for rows.Next() {
		var s domain.Schedule
		var metaBytes []byte
		if err := rows.Scan(&s.ID, &s.ContentID, &s.Platform, &s.ScheduledTime, &metaBytes, &s.CreatedAt); err != nil {
			continue
		}
		if len(metaBytes) > 0 {
			_ = json.Unmarshal(metaBytes, &s.Metadata)
		}
		items = append(items, s)
	}
	a.json(w, http.StatusOK, map[string]any{"schedules": items})
}
