package domain

import "time"

// InputType enumerates the categories the generation backend accepts.
type InputType string

const (
	InputTypeVideo        InputType = "video"
	InputTypePrompt       InputType = "prompt"
	InputTypeVoiceNote    InputType = "voice_note"
	InputTypeSocialImport InputType = "social_import"
)

// JobStatus enumerates kit job lifecycle states. Transitions are monotonic:
// INITIATED -> PROCESSING -> COMPLETED | FAILED, never backwards.
type JobStatus string

const (
	JobStatusInitiated  JobStatus = "INITIATED"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether no further transitions can occur.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// JobProgress is the optional sub-state reported while a job runs.
type JobProgress struct {
	Step           string `json:"step,omitempty"`
	Percent        int    `json:"percent"`
	CompletedSteps int    `json:"completed_steps"`
	TotalSteps     int    `json:"total_steps"`
	ETASeconds     int    `json:"eta_seconds,omitempty"`
}

// OutputPayload is the generated content for one format: a single document or
// an ordered list of short pieces (tweets, captions).
type OutputPayload struct {
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// KitJob is the server-side unit of generation work. Clients observe it only
// through status fetches; it becomes immutable once terminal.
type KitJob struct {
	JobID        string                          `json:"job_id"`
	UserID       string                          `json:"user_id,omitempty"`
	InputType    InputType                       `json:"input_type"`
	Status       JobStatus                       `json:"status"`
	Progress     *JobProgress                    `json:"progress,omitempty"`
	Outputs      map[ContentFormat]OutputPayload `json:"outputs,omitempty"`
	ErrorMessage string                          `json:"error_message,omitempty"`
	CreatedAt    time.Time                       `json:"created_at"`
	UpdatedAt    time.Time                       `json:"updated_at"`
}

// KitRequest is the outgoing submission payload. Exactly one of FileID, Text
// and Content is populated depending on the draft's source type.
type KitRequest struct {
	InputType            InputType       `json:"input_type"`
	FileID               string          `json:"file_id,omitempty"`
	Text                 string          `json:"text,omitempty"`
	Content              []string        `json:"content,omitempty"`
	UseKnowledgeBase     bool            `json:"use_knowledge_base"`
	Audience             AudienceProfile `json:"audience"`
	SelectedContentTypes []string        `json:"selected_content_types"`
	Locale               string          `json:"locale,omitempty"`
}
