package wizard

import (
	"context"
	"reflect"
	"testing"

	"echome/internal/domain"
)

func TestSaveAndLoadPreset(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWizard(t)

	audience := domain.AudienceProfile{
		Name:       "Indie hackers",
		Tone:       domain.ToneCasual,
		Style:      domain.StyleStorytelling,
		PainPoints: []string{"no time for marketing"},
		Goals:      []string{"grow an audience"},
	}
	mustDo(t, w.SetAudience(ctx, audience))
	mustDo(t, w.SetFormats(ctx, []domain.ContentFormat{domain.FormatTweet, domain.FormatLinkedInPost}))

	preset, err := w.SavePreset(ctx, "My Preset")
	if err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	if preset.ID == "" {
		t.Fatal("preset saved without an id")
	}

	// Drift the draft, then restore from the preset.
	mustDo(t, w.SetAudience(ctx, domain.AudienceProfile{Name: "Enterprise buyers"}))
	mustDo(t, w.ClearFormats(ctx))

	if err := w.LoadPreset(ctx, preset.ID); err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if !reflect.DeepEqual(w.Draft().Audience, audience) {
		t.Fatalf("audience not restored: %#v", w.Draft().Audience)
	}
	want := []domain.ContentFormat{domain.FormatTweet, domain.FormatLinkedInPost}
	if !reflect.DeepEqual(w.Draft().SelectedFormats, want) {
		t.Fatalf("formats not restored: %#v", w.Draft().SelectedFormats)
	}
}

func TestPresetRenameAndDelete(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestWizard(t)

	if _, err := w.SavePreset(ctx, "  "); err == nil {
		t.Fatal("blank preset name accepted")
	}

	preset, err := w.SavePreset(ctx, "First")
	if err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	if err := w.RenamePreset(ctx, preset.ID, "Renamed"); err != nil {
		t.Fatalf("RenamePreset: %v", err)
	}
	list, err := w.ListPresets(ctx)
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Renamed" {
		t.Fatalf("list = %#v", list)
	}

	if err := w.DeletePreset(ctx, preset.ID); err != nil {
		t.Fatalf("DeletePreset: %v", err)
	}
	if err := w.LoadPreset(ctx, preset.ID); err == nil {
		t.Fatal("loaded a deleted preset")
	}
}
