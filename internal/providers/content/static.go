package content

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"echome/internal/domain"
)

// StaticGenerator produces canned copy without any external call. Used in
// tests and as a development fallback when no provider is configured.
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (s *StaticGenerator) Generate(ctx context.Context, req GenerateRequest) (domain.OutputPayload, error) {
	if err := ctx.Err(); err != nil {
		return domain.OutputPayload{}, err
	}

	c := cases.Title(language.Und)
	topic := firstWords(req.SourceText, 6)
	if topic == "" {
		topic = "Your Story"
	}
	headline := c.String(topic)

	audience := req.Audience.Name
	if audience == "" {
		audience = "your audience"
	}

	count := ItemCount(req.Format)
	if count == 0 {
		return domain.OutputPayload{
			Text: fmt.Sprintf("%s\n\nA %s take on %q, written for %s.", headline, toneOrDefault(req.Audience.Tone), topic, audience),
		}, nil
	}

	items := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		items = append(items, fmt.Sprintf("%s (%d/%d) — for %s", headline, i, count, audience))
	}
	return domain.OutputPayload{Items: items}, nil
}

func toneOrDefault(tone domain.AudienceTone) string {
	if tone == "" {
		return string(domain.ToneFriendly)
	}
	return string(tone)
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

var _ Generator = (*StaticGenerator)(nil)
