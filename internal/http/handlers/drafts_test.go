package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeDraftState(t *testing.T, rec *httptest.ResponseRecorder) draftStateResponse {
	t.Helper()
	var state draftStateResponse
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode draft state: %v", err)
	}
	return state
}

func TestDraftCurrentStartsEmpty(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	app.DraftCurrent(rec, newAuthedRequest(t, http.MethodGet, "/v1/drafts/current", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	state := decodeDraftState(t, rec)
	if state.Step != 1 {
		t.Fatalf("step = %d, want 1", state.Step)
	}
	if state.CanProceed {
		t.Fatal("empty draft should not proceed past the source step")
	}
}

func TestDraftActionPersistsAcrossRequests(t *testing.T) {
	app := newTestApp(nil)

	rec := httptest.NewRecorder()
	app.DraftAction(rec, newAuthedRequest(t, http.MethodPost, "/v1/drafts/current/actions",
		`{"action":"set_text","text":"our q3 launch story"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	state := decodeDraftState(t, rec)
	if state.Draft.Source.Text != "our q3 launch story" {
		t.Fatalf("text = %q", state.Draft.Source.Text)
	}
	if !state.CanProceed {
		t.Fatal("populated text source should pass the source gate")
	}

	rec = httptest.NewRecorder()
	app.DraftCurrent(rec, newAuthedRequest(t, http.MethodGet, "/v1/drafts/current", ""))
	state = decodeDraftState(t, rec)
	if state.Draft.Source.Text != "our q3 launch story" {
		t.Fatalf("reloaded text = %q, mutation not persisted", state.Draft.Source.Text)
	}
}

func TestDraftActionRejectsInvalidURL(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	app.DraftAction(rec, newAuthedRequest(t, http.MethodPost, "/v1/drafts/current/actions",
		`{"action":"add_url","url":"ftp://example.com/feed"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "invalid_url" {
		t.Fatalf("error = %q, want invalid_url", body["error"])
	}
}

func TestDraftActionUnknown(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	app.DraftAction(rec, newAuthedRequest(t, http.MethodPost, "/v1/drafts/current/actions",
		`{"action":"launch_rocket"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDraftRequiresUser(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	app.DraftCurrent(rec, httptest.NewRequest(http.MethodGet, "/v1/drafts/current", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestDraftReset(t *testing.T) {
	app := newTestApp(nil)
	seedDraft(t, app)

	rec := httptest.NewRecorder()
	app.DraftReset(rec, newAuthedRequest(t, http.MethodDelete, "/v1/drafts/current", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	state := decodeDraftState(t, rec)
	if state.Draft.Source.Text != "" || len(state.Draft.SelectedFormats) != 0 {
		t.Fatalf("reset draft still populated: %#v", state.Draft)
	}
	if state.Step != 1 {
		t.Fatalf("step after reset = %d, want 1", state.Step)
	}
}

func TestDraftStepNavigation(t *testing.T) {
	app := newTestApp(nil)
	seedDraft(t, app)

	rec := httptest.NewRecorder()
	app.DraftAction(rec, newAuthedRequest(t, http.MethodPost, "/v1/drafts/current/actions",
		`{"action":"next_step","step":1}`))
	state := decodeDraftState(t, rec)
	if state.Step != 2 {
		t.Fatalf("step = %d, want 2", state.Step)
	}

	// The format gate blocks when nothing is selected.
	rec = httptest.NewRecorder()
	app.DraftAction(rec, newAuthedRequest(t, http.MethodPost, "/v1/drafts/current/actions",
		`{"action":"clear_formats"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear_formats status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	app.DraftAction(rec, newAuthedRequest(t, http.MethodPost, "/v1/drafts/current/actions",
		`{"action":"next_step","step":3}`))
	state = decodeDraftState(t, rec)
	if state.Step != 3 {
		t.Fatalf("step = %d, want 3 (gate should block)", state.Step)
	}
}
