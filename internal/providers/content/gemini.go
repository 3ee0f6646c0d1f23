package content

import (
	"context"
	"fmt"
	"strings"

	"echome/internal/domain"
	"echome/internal/providers/genai"
)

// GeminiGenerator renders a format-specific prompt and delegates to the
// Gemini client.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (domain.OutputPayload, error) {
	count := ItemCount(req.Format)
	if count == 0 {
		text, err := g.client.GenerateText(ctx, genai.TextRequest{
			Prompt:    buildPrompt(req, 0),
			Locale:    req.Locale,
			RequestID: req.RequestID,
		})
		if err != nil {
			return domain.OutputPayload{}, fmt.Errorf("%s: %w", req.Format, err)
		}
		return domain.OutputPayload{Text: text}, nil
	}

	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, err := g.client.GenerateText(ctx, genai.TextRequest{
			Prompt:    buildPrompt(req, i+1),
			Locale:    req.Locale,
			RequestID: req.RequestID,
		})
		if err != nil {
			return domain.OutputPayload{}, fmt.Errorf("%s item %d: %w", req.Format, i+1, err)
		}
		items = append(items, text)
	}
	return domain.OutputPayload{Items: items}, nil
}

var formatInstructions = map[domain.ContentFormat]string{
	domain.FormatBlogPost:         "Write a long-form blog post with a headline and subheadings.",
	domain.FormatTweet:            "Write a single punchy tweet under 280 characters.",
	domain.FormatLinkedInPost:     "Write a LinkedIn post with a strong hook and a call to action.",
	domain.FormatInstagramCaption: "Write an Instagram caption with relevant hashtags.",
	domain.FormatEmailNewsletter:  "Write an email newsletter with a subject line and body.",
	domain.FormatVideoScript:      "Write a short-form video script with scene directions.",
	domain.FormatFacebookPost:     "Write a Facebook post that invites discussion.",
}

func buildPrompt(req GenerateRequest, item int) string {
	var b strings.Builder
	instruction, ok := formatInstructions[req.Format]
	if !ok {
		instruction = fmt.Sprintf("Write marketing copy in the %q format.", req.Format)
	}
	b.WriteString(instruction)
	b.WriteString("\n")
	if item > 0 {
		fmt.Fprintf(&b, "This is piece %d of a set; make it distinct from the others.\n", item)
	}
	if req.Audience.Name != "" {
		fmt.Fprintf(&b, "Audience: %s.\n", req.Audience.Name)
	}
	if req.Audience.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s.\n", req.Audience.Tone)
	}
	if req.Audience.Style != "" {
		fmt.Fprintf(&b, "Style: %s.\n", req.Audience.Style)
	}
	if req.Audience.Demographic != "" {
		fmt.Fprintf(&b, "Demographic: %s.\n", req.Audience.Demographic)
	}
	if len(req.Audience.PainPoints) > 0 {
		fmt.Fprintf(&b, "Pain points: %s.\n", strings.Join(req.Audience.PainPoints, "; "))
	}
	if len(req.Audience.Goals) > 0 {
		fmt.Fprintf(&b, "Goals: %s.\n", strings.Join(req.Audience.Goals, "; "))
	}
	if req.Locale != "" {
		fmt.Fprintf(&b, "Language: %s.\n", req.Locale)
	}
	b.WriteString("\nSource material:\n")
	b.WriteString(req.SourceText)
	return b.String()
}

var _ Generator = (*GeminiGenerator)(nil)
