package actionitem

import "time"

// ActionItemResponse represents an action item in API responses
type ActionItemResponse struct {
	ID              uint       `json:"id"`
	MeetingID       uint       `json:"meeting_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Owner           *string    `json:"owner"`
	DueDate         *string    `json:"due_date"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	Notes           *string    `json:"notes"`
	IsDeleted       bool       `json:"is_deleted"`
	StatusChangedAt *time.Time `json:"status_changed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ActionItemListResponse represents a list of action items
type ActionItemListResponse struct {
	Items []*ActionItemResponse `json:"items"`
	Count int                   `json:"count"`
}

// BatchUpdateStatusResponse reports the outcome of a bulk status change
type BatchUpdateStatusResponse struct {
	UpdatedCount int64  `json:"updated_count"`
	IDs          []uint `json:"ids"`
	Message      string `json:"message"`
}

// ExtractionResponse reports the action items created by an extraction run
type ExtractionResponse struct {
	MeetingID uint                  `json:"meeting_id"`
	Items     []*ActionItemResponse `json:"items"`
	Count     int                   `json:"count"`
}
