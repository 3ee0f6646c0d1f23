package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestBatchImportCreatesItems(t *testing.T) {
	const batchID = "2c9f8a7b-6d5e-4f3a-8b1c-0d9e8f7a6b5c"
	var itemOrders []int
	sql := &stubSQL{
		queryRowFn: func(ctx context.Context, query string, args ...any) pgx.Row {
			if !strings.Contains(query, "insert into batch_imports") {
				t.Fatalf("unexpected query: %s", query)
			}
			if args[1] != 3 {
				t.Fatalf("total_items = %v, want 3", args[1])
			}
			return NewSimpleRow(func(dest ...any) error {
				*(dest[0].(*string)) = batchID
				return nil
			})
		},
		execFn: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			if strings.Contains(query, "insert into batch_import_items") {
				itemOrders = append(itemOrders, args[1].(int))
			}
			return pgconn.CommandTag{}, nil
		},
	}
	app := newTestApp(sql)

	rec := httptest.NewRecorder()
	app.BatchImport(rec, newAuthedRequest(t, http.MethodPost, "/v1/batches/import",
		`{"urls":["https://a.example/1","https://a.example/2","https://a.example/3"]}`))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}
	var resp batchImportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BatchID != batchID || resp.TotalItems != 3 || resp.Status != "PROCESSING" {
		t.Fatalf("response = %+v", resp)
	}
	if len(itemOrders) != 3 || itemOrders[0] != 1 || itemOrders[2] != 3 {
		t.Fatalf("item orders = %v, want 1..3", itemOrders)
	}
}

func TestBatchImportRejectsBadURL(t *testing.T) {
	app := newTestApp(&stubSQL{
		queryRowFn: func(ctx context.Context, query string, args ...any) pgx.Row {
			t.Fatal("nothing should be persisted on validation failure")
			return NewSimpleRow(nil)
		},
	})

	rec := httptest.NewRecorder()
	app.BatchImport(rec, newAuthedRequest(t, http.MethodPost, "/v1/batches/import",
		`{"urls":["https://ok.example","not a url"]}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "invalid_url" {
		t.Fatalf("error = %q, want invalid_url", body["error"])
	}
}

func TestBatchImportRequiresURLs(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()
	app.BatchImport(rec, newAuthedRequest(t, http.MethodPost, "/v1/batches/import", `{"urls":[]}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
