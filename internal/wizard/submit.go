package wizard

import (
	"strings"

	"echome/internal/domain"
)

// BuildSubmission translates the draft into the backend job-creation request.
// Exactly one of FileID, Text and Content is populated; an inconsistent draft
// fails fast with ErrInvalidSourceConfig before anything leaves the process.
func (w *Wizard) BuildSubmission(locale string) (*domain.KitRequest, error) {
	draft := w.draft
	if len(draft.SelectedFormats) == 0 {
		return nil, domain.ErrNoFormats
	}

	req := &domain.KitRequest{
		UseKnowledgeBase: draft.UseKnowledgeBase,
		Audience:         draft.Audience,
		Locale:           locale,
	}
	for _, f := range draft.SelectedFormats {
		req.SelectedContentTypes = append(req.SelectedContentTypes, domain.BackendContentType(f))
	}

	switch draft.SourceType {
	case domain.SourceTypeFile:
		if draft.Source.File == nil || draft.Source.File.ID == "" {
			return nil, domain.ErrInvalidSourceConfig
		}
		req.FileID = draft.Source.File.ID
		req.InputType = inputTypeForMIME(draft.Source.File.MIME)
	case domain.SourceTypeText, domain.SourceTypeKnowledgeBase:
		text := strings.TrimSpace(draft.Source.Text)
		if text == "" {
			return nil, domain.ErrInvalidSourceConfig
		}
		req.Text = text
		req.InputType = domain.InputTypePrompt
	case domain.SourceTypeURL:
		if len(draft.Source.URLs) == 0 {
			return nil, domain.ErrInvalidSourceConfig
		}
		req.Content = append([]string(nil), draft.Source.URLs...)
		req.InputType = domain.InputTypeSocialImport
	default:
		return nil, domain.ErrInvalidSourceConfig
	}

	return req, nil
}

func inputTypeForMIME(mime string) domain.InputType {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if strings.HasPrefix(mime, "audio/") {
		return domain.InputTypeVoiceNote
	}
	return domain.InputTypeVideo
}
