package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"echome/internal/domain"
	"echome/internal/wizard"
)

func TestKitGenerateEnqueuesJob(t *testing.T) {
	const jobID = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	var enqueued []any
	sql := &stubSQL{
		queryRowFn: func(ctx context.Context, query string, args ...any) pgx.Row {
			if !strings.Contains(query, "insert into content_kit_jobs") {
				t.Fatalf("unexpected query: %s", query)
			}
			enqueued = args
			return NewSimpleRow(func(dest ...any) error {
				*(dest[0].(*string)) = jobID
				return nil
			})
		},
	}
	app := newTestApp(sql)
	seedDraft(t, app)

	rec := httptest.NewRecorder()
	app.KitGenerate(rec, newAuthedRequest(t, http.MethodPost, "/v1/kits/generate", ""))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}
	var resp jobResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.JobID != jobID || resp.Status != "INITIATED" {
		t.Fatalf("response = %+v", resp)
	}

	if len(enqueued) != 3 {
		t.Fatalf("enqueue args = %d, want 3", len(enqueued))
	}
	if enqueued[1] != "prompt" {
		t.Fatalf("input_type = %v, want prompt", enqueued[1])
	}
	var req domain.KitRequest
	if err := json.Unmarshal(enqueued[2].([]byte), &req); err != nil {
		t.Fatalf("request payload: %v", err)
	}
	if req.Text == "" || req.FileID != "" || len(req.Content) != 0 {
		t.Fatalf("exactly one source branch expected: %+v", req)
	}
	want := []string{"blogPost", "tweets"}
	if len(req.SelectedContentTypes) != len(want) {
		t.Fatalf("content types = %v, want %v", req.SelectedContentTypes, want)
	}
	for i, ct := range want {
		if req.SelectedContentTypes[i] != ct {
			t.Fatalf("content types = %v, want %v", req.SelectedContentTypes, want)
		}
	}
}

func TestKitGenerateRequiresFormats(t *testing.T) {
	app := newTestApp(&stubSQL{
		queryRowFn: func(ctx context.Context, query string, args ...any) pgx.Row {
			t.Fatal("nothing should be enqueued")
			return NewSimpleRow(nil)
		},
	})
	wiz := wizard.New(testUserID, app.Drafts, app.Presets)
	if err := wiz.SetTextInput(context.Background(), "some source"); err != nil {
		t.Fatalf("SetTextInput: %v", err)
	}

	rec := httptest.NewRecorder()
	app.KitGenerate(rec, newAuthedRequest(t, http.MethodPost, "/v1/kits/generate", ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "no_formats" {
		t.Fatalf("error = %q, want no_formats", body["error"])
	}
}

func TestKitGenerateFailsFastOnInvalidSource(t *testing.T) {
	app := newTestApp(&stubSQL{
		queryRowFn: func(ctx context.Context, query string, args ...any) pgx.Row {
			t.Fatal("invalid source must not reach the queue")
			return NewSimpleRow(nil)
		},
	})
	ctx := context.Background()
	wiz := wizard.New(testUserID, app.Drafts, app.Presets)
	if err := wiz.SetSourceType(ctx, domain.SourceTypeURL); err != nil {
		t.Fatalf("SetSourceType: %v", err)
	}
	if err := wiz.SetFormats(ctx, []domain.ContentFormat{domain.FormatTweet}); err != nil {
		t.Fatalf("SetFormats: %v", err)
	}

	rec := httptest.NewRecorder()
	app.KitGenerate(rec, newAuthedRequest(t, http.MethodPost, "/v1/kits/generate", ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "invalid_source" {
		t.Fatalf("error = %q, want invalid_source", body["error"])
	}
}

func TestKitStatusNotFound(t *testing.T) {
	app := newTestApp(nil)

	req := newAuthedRequest(t, http.MethodGet, "/v1/kits/unknown/status", "")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("job_id", "0e4cdc1a-7e09-4cb9-9b8f-1c2d3e4f5a6b")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	app.KitStatus(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestOutputEntriesLayout(t *testing.T) {
	entries := outputEntries(map[domain.ContentFormat]domain.OutputPayload{
		domain.FormatTweet:    {Items: []string{"one", "two"}},
		domain.FormatBlogPost: {Text: "# Post"},
	})
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"blog_post.md", "tweet/1.txt", "tweet/2.txt"}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entries = %v, want %v", names, want)
		}
	}
}
