package domain

import (
	"math"
	"sort"
	"time"
)

// BatchItemStatus enumerates per-item states inside a batch.
type BatchItemStatus string

const (
	BatchItemPending    BatchItemStatus = "PENDING"
	BatchItemProcessing BatchItemStatus = "PROCESSING"
	BatchItemCompleted  BatchItemStatus = "COMPLETED"
	BatchItemFailed     BatchItemStatus = "FAILED"
)

// BatchItem is one imported source inside a batch. JobID is set once the
// item's content kit exists.
type BatchItem struct {
	Order     int             `json:"order"`
	SourceURL string          `json:"source_url,omitempty"`
	Status    BatchItemStatus `json:"status"`
	JobID     string          `json:"job_id,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// BatchJob aggregates N independent generation jobs. The batch is terminal at
// the batch level regardless of individual item states; counts satisfy
// completed+failed <= total at all times and equality only once terminal.
type BatchJob struct {
	BatchID        string      `json:"batch_id"`
	UserID         string      `json:"user_id,omitempty"`
	Status         JobStatus   `json:"status"`
	TotalItems     int         `json:"total_items"`
	ProcessedItems int         `json:"processed_items"`
	CompletedItems int         `json:"completed_items"`
	FailedItems    int         `json:"failed_items"`
	ItemDetails    []BatchItem `json:"item_details"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ProgressPercent reports items resolved, not items succeeded: failed items
// still count toward batch progress.
func (b *BatchJob) ProgressPercent() int {
	if b.TotalItems <= 0 {
		return 0
	}
	resolved := b.CompletedItems + b.FailedItems
	return int(math.Round(100 * float64(resolved) / float64(b.TotalItems)))
}

// SortItems orders item details ascending by Order. Items may resolve out of
// sequence, so arrival order is never authoritative.
func (b *BatchJob) SortItems() {
	sort.SliceStable(b.ItemDetails, func(i, j int) bool {
		return b.ItemDetails[i].Order < b.ItemDetails[j].Order
	})
}
