package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidURL          = errors.New("url must be a valid http or https address")
	ErrEmptySource         = errors.New("source input is required")
	ErrNoFormats           = errors.New("at least one content format is required")
	ErrInvalidSourceConfig = errors.New("invalid source configuration")
	ErrPresetNameRequired  = errors.New("preset name is required")
	ErrProviderFailure     = errors.New("provider failure")
)
