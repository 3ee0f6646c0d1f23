package domain

import (
	"net/url"
	"strings"
	"time"
)

// SourceType selects which branch of SourceInput feeds a generation.
type SourceType string

const (
	SourceTypeText          SourceType = "text"
	SourceTypeFile          SourceType = "file"
	SourceTypeURL           SourceType = "url"
	SourceTypeKnowledgeBase SourceType = "knowledge_base"
)

// AudienceTone enumerates supported voice settings for generated copy.
type AudienceTone string

const (
	ToneProfessional  AudienceTone = "professional"
	ToneCasual        AudienceTone = "casual"
	ToneFriendly      AudienceTone = "friendly"
	ToneBold          AudienceTone = "bold"
	ToneInspirational AudienceTone = "inspirational"
)

// AudienceStyle enumerates supported writing styles.
type AudienceStyle string

const (
	StyleConcise        AudienceStyle = "concise"
	StyleStorytelling   AudienceStyle = "storytelling"
	StyleEducational    AudienceStyle = "educational"
	StyleConversational AudienceStyle = "conversational"
)

// FileRef points at a previously uploaded source file.
type FileRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	MIME string `json:"mime"`
}

// SourceInput is a tagged variant: exactly one branch is populated, selected by
// Kind. Mutators on GenerationDraft keep the other branches zeroed so the
// "exactly one populated" rule is structural rather than a convention.
type SourceInput struct {
	Kind SourceType `json:"kind"`
	Text string     `json:"text,omitempty"`
	File *FileRef   `json:"file,omitempty"`
	URLs []string   `json:"urls,omitempty"`
}

// AudienceProfile describes who the generated content should speak to.
type AudienceProfile struct {
	Name        string        `json:"name"`
	Tone        AudienceTone  `json:"tone"`
	Style       AudienceStyle `json:"style"`
	Demographic string        `json:"demographic"`
	PainPoints  []string      `json:"pain_points"`
	Goals       []string      `json:"goals"`
}

// GenerationDraft is the single in-progress configuration a user is building.
// It is persisted wholesale after every mutation and reloaded on resume.
type GenerationDraft struct {
	SourceType       SourceType      `json:"source_type"`
	Source           SourceInput     `json:"source"`
	UseKnowledgeBase bool            `json:"use_knowledge_base"`
	Audience         AudienceProfile `json:"audience"`
	SelectedFormats  []ContentFormat `json:"selected_formats"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// NewDraft returns an empty draft ready for the first wizard step.
func NewDraft() *GenerationDraft {
	return &GenerationDraft{
		SourceType: SourceTypeText,
		Source:     SourceInput{Kind: SourceTypeText},
	}
}

// ValidateURL checks a candidate source URL: it must parse and carry an http or
// https scheme. Anything else is rejected before it reaches the draft.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrInvalidURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidURL
	}
	if parsed.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// HasSource reports whether the branch selected by SourceType is populated.
func (d *GenerationDraft) HasSource() bool {
	switch d.SourceType {
	case SourceTypeText, SourceTypeKnowledgeBase:
		return strings.TrimSpace(d.Source.Text) != ""
	case SourceTypeFile:
		return d.Source.File != nil && d.Source.File.ID != ""
	case SourceTypeURL:
		return len(d.Source.URLs) > 0
	}
	return false
}

// HasFormat reports whether the format is currently selected.
func (d *GenerationDraft) HasFormat(f ContentFormat) bool {
	for _, have := range d.SelectedFormats {
		if have == f {
			return true
		}
	}
	return false
}
