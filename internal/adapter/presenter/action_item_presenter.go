package presenter

import (
	"github.com/actiondesk/action-tracker/internal/adapter/dto/actionitem"
	"github.com/actiondesk/action-tracker/internal/domain/entities"
)

const dueDateLayout = "2006-01-02"

// ToActionItemResponse converts an ActionItem entity to its response DTO
func ToActionItemResponse(item *entities.ActionItem) *actionitem.ActionItemResponse {
	if item == nil {
		return nil
	}

	var dueDate *string
	if item.DueDate != nil {
		formatted := item.DueDate.Format(dueDateLayout)
		dueDate = &formatted
	}

	return &actionitem.ActionItemResponse{
		ID:              item.ID,
		MeetingID:       item.MeetingID,
		Title:           item.Title,
		Description:     item.Description,
		Owner:           item.Owner,
		DueDate:         dueDate,
		Status:          string(item.Status),
		Priority:        string(item.Priority),
		Notes:           item.Notes,
		IsDeleted:       item.IsDeleted,
		StatusChangedAt: item.StatusChangedAt,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// ToActionItemListResponse converts a slice of ActionItem entities to a list DTO
func ToActionItemListResponse(items []*entities.ActionItem) *actionitem.ActionItemListResponse {
	responses := make([]*actionitem.ActionItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToActionItemResponse(item)
	}
	return &actionitem.ActionItemListResponse{
		Items: responses,
		Count: len(responses),
	}
}

// ToExtractionResponse converts an extraction run's output to its response DTO
func ToExtractionResponse(meetingID uint, items []*entities.ActionItem) *actionitem.ExtractionResponse {
	responses := make([]*actionitem.ActionItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToActionItemResponse(item)
	}
	return &actionitem.ExtractionResponse{
		MeetingID: meetingID,
		Items:     responses,
		Count:     len(responses),
	}
}
