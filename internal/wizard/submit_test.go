package wizard

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"echome/internal/domain"
)

func TestBuildSubmission(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		prepare func(t *testing.T, w *Wizard)
		want    *domain.KitRequest
		wantErr error
	}{
		{
			name: "text source",
			prepare: func(t *testing.T, w *Wizard) {
				mustDo(t, w.SetTextInput(ctx, "  launch announcement  "))
				mustDo(t, w.SetFormats(ctx, []domain.ContentFormat{domain.FormatBlogPost, domain.FormatTweet}))
			},
			want: &domain.KitRequest{
				InputType:            domain.InputTypePrompt,
				Text:                 "launch announcement",
				SelectedContentTypes: []string{"blogPost", "tweets"},
				Locale:               "en",
			},
		},
		{
			name: "video file source",
			prepare: func(t *testing.T, w *Wizard) {
				mustDo(t, w.SetSourceType(ctx, domain.SourceTypeFile))
				mustDo(t, w.SetFile(ctx, domain.FileRef{ID: "f-9", Name: "talk.mp4", MIME: "video/mp4"}))
				mustDo(t, w.SetFormats(ctx, []domain.ContentFormat{domain.FormatVideoScript}))
			},
			want: &domain.KitRequest{
				InputType:            domain.InputTypeVideo,
				FileID:               "f-9",
				SelectedContentTypes: []string{"videoScript"},
				Locale:               "en",
			},
		},
		{
			name: "voice note file source",
			prepare: func(t *testing.T, w *Wizard) {
				mustDo(t, w.SetSourceType(ctx, domain.SourceTypeFile))
				mustDo(t, w.SetFile(ctx, domain.FileRef{ID: "f-2", Name: "memo.m4a", MIME: "audio/mp4"}))
				mustDo(t, w.SetFormats(ctx, []domain.ContentFormat{domain.FormatLinkedInPost}))
			},
			want: &domain.KitRequest{
				InputType:            domain.InputTypeVoiceNote,
				FileID:               "f-2",
				SelectedContentTypes: []string{"linkedinPost"},
				Locale:               "en",
			},
		},
		{
			name: "url source",
			prepare: func(t *testing.T, w *Wizard) {
				mustDo(t, w.SetSourceType(ctx, domain.SourceTypeURL))
				mustDo(t, w.AddURL(ctx, "https://x.com/me/status/1"))
				mustDo(t, w.AddURL(ctx, "https://x.com/me/status/2"))
				mustDo(t, w.SetFormats(ctx, []domain.ContentFormat{domain.FormatTweet}))
			},
			want: &domain.KitRequest{
				InputType:            domain.InputTypeSocialImport,
				Content:              []string{"https://x.com/me/status/1", "https://x.com/me/status/2"},
				SelectedContentTypes: []string{"tweets"},
				Locale:               "en",
			},
		},
		{
			name: "knowledge base source",
			prepare: func(t *testing.T, w *Wizard) {
				mustDo(t, w.SetSourceType(ctx, domain.SourceTypeKnowledgeBase))
				mustDo(t, w.SetTextInput(ctx, "pull from my product notes"))
				mustDo(t, w.SetFormats(ctx, []domain.ContentFormat{domain.FormatEmailNewsletter}))
			},
			want: &domain.KitRequest{
				InputType:            domain.InputTypePrompt,
				Text:                 "pull from my product notes",
				UseKnowledgeBase:     true,
				SelectedContentTypes: []string{"emailNewsletter"},
				Locale:               "en",
			},
		},
		{
			name: "empty text blocks submission",
			prepare: func(t *testing.T, w *Wizard) {
				mustDo(t, w.SetTextInput(ctx, ""))
				mustDo(t, w.SetFormats(ctx, []domain.ContentFormat{domain.FormatBlogPost}))
			},
			wantErr: domain.ErrInvalidSourceConfig,
		},
		{
			name: "no formats selected",
			prepare: func(t *testing.T, w *Wizard) {
				mustDo(t, w.SetTextInput(ctx, "something"))
			},
			wantErr: domain.ErrNoFormats,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newTestWizard(t)
			tc.prepare(t, w)

			got, err := w.BuildSubmission("en")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildSubmission: %v", err)
			}
			// The audience rides along unchanged; compare the rest.
			got.Audience = domain.AudienceProfile{}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("request mismatch:\n got %#v\nwant %#v", got, tc.want)
			}
		})
	}
}

func TestCanProceedBlocksEmptyTextSource(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWizard(t)
	mustDo(t, w.SetTextInput(ctx, ""))
	if w.CanProceed() {
		t.Fatal("CanProceed() = true with blank text source")
	}
	w.NextStep()
	if w.CurrentStep() != StepSource {
		t.Fatalf("NextStep advanced past a failing gate to %d", w.CurrentStep())
	}
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
