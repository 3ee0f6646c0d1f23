package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"echome/internal/domain"
)

const maxUploadBytes = 64 << 20

// Upload accepts a multipart source file and stores it for later generation.
// The returned file id doubles as the storage key the worker reads from.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if a.Files == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "file storage not configured")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file field required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read file")
		return
	}
	if len(data) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "empty file")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "audio/") && !strings.HasPrefix(mimeType, "video/") {
		a.error(w, http.StatusBadRequest, "unsupported_media", "only audio and video sources are accepted")
		return
	}

	key := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.NewString(), filepath.Ext(header.Filename))
	storedKey, err := a.Files.Write(r.Context(), key, data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("store upload failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store file")
		return
	}
	a.json(w, http.StatusCreated, domain.FileRef{
		ID:   storedKey,
		Name: header.Filename,
		MIME: mimeType,
	})
}
