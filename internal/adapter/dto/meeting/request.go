package meeting

import "time"

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title        string     `json:"title" validate:"required,min=1,max=255"`
	Transcript   string     `json:"transcript,omitempty"`
	Participants []string   `json:"participants,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}
