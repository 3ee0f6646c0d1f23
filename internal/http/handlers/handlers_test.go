package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/middleware"
	"echome/internal/wizard"
)

const testUserID = "8f14e45f-ceea-467f-a8d9-55a50cb4e5a1"

type stubSQL struct {
	execFn     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	queryRowFn func(ctx context.Context, query string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

func (s *stubSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFn != nil {
		return s.execFn(ctx, query, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (s *stubSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFn != nil {
		return s.queryRowFn(ctx, query, args...)
	}
	return NewSimpleRow(nil)
}

func (s *stubSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.queryFn != nil {
		return s.queryFn(ctx, query, args...)
	}
	return nil, fmt.Errorf("unsupported query: %s", query)
}

var _ infra.SQLExecutor = (*stubSQL)(nil)

func newTestApp(sql infra.SQLExecutor) *App {
	if sql == nil {
		sql = &stubSQL{}
	}
	return &App{
		Config: infra.Config{
			AppEnv:        "test",
			JWTSecret:     "test-secret",
			DefaultLocale: "en",
		},
		Logger:  zerolog.Nop(),
		SQL:     sql,
		Drafts:  wizard.NewMemoryDraftStore(),
		Presets: wizard.NewMemoryPresetStore(),
	}
}

func newAuthedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.ContextWithUserID(req.Context(), testUserID)
	return req.WithContext(ctx)
}

// seedDraft pushes a submittable draft into the app's stores through the
// wizard itself so handler tests observe the same persistence path.
func seedDraft(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()
	wiz := wizard.New(testUserID, a.Drafts, a.Presets)
	if err := wiz.SetTextInput(ctx, "launch week recap for the newsletter"); err != nil {
		t.Fatalf("SetTextInput: %v", err)
	}
	if err := wiz.SetFormats(ctx, []domain.ContentFormat{domain.FormatBlogPost, domain.FormatTweet}); err != nil {
		t.Fatalf("SetFormats: %v", err)
	}
}
