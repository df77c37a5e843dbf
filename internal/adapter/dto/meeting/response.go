package meeting

import "time"

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Participants  []string   `json:"participants"`
	HasTranscript bool       `json:"has_transcript"`
	StartedAt     *time.Time `json:"started_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// MeetingListResponse represents a list of meetings
type MeetingListResponse struct {
	Meetings []*MeetingResponse `json:"meetings"`
	Count    int                `json:"count"`
}
