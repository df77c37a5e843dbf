package presenter

import (
	"encoding/json"

	"github.com/actiondesk/action-tracker/internal/adapter/dto/meeting"
	"github.com/actiondesk/action-tracker/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to its response DTO.
// The transcript itself stays out of the payload; callers only need
// to know whether one exists.
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	participants := []string{}
	if len(m.Participants) > 0 {
		json.Unmarshal(m.Participants, &participants)
	}

	return &meeting.MeetingResponse{
		ID:            m.ID,
		Title:         m.Title,
		Participants:  participants,
		HasTranscript: m.HasTranscript(),
		StartedAt:     m.StartedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a slice of Meeting entities to a list DTO
func ToMeetingListResponse(meetings []*entities.Meeting) *meeting.MeetingListResponse {
	responses := make([]*meeting.MeetingResponse, len(meetings))
	for i, m := range meetings {
		responses[i] = ToMeetingResponse(m)
	}
	return &meeting.MeetingListResponse{
		Meetings: responses,
		Count:    len(responses),
	}
}
