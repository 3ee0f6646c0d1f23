// Package content turns one source into per-format marketing copy.
package content

import (
	"context"

	"echome/internal/domain"
)

// GenerateRequest carries everything a generator needs for one format.
type GenerateRequest struct {
	Format     domain.ContentFormat
	SourceText string
	Audience   domain.AudienceProfile
	Locale     string
	RequestID  string
}

// Generator produces the payload for a single content format.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (domain.OutputPayload, error)
}

// listFormats produce an ordered list of short pieces instead of one document.
var listFormats = map[domain.ContentFormat]int{
	domain.FormatTweet:            5,
	domain.FormatInstagramCaption: 3,
}

// ItemCount returns how many pieces a format yields; 0 means one document.
func ItemCount(f domain.ContentFormat) int {
	return listFormats[f]
}
