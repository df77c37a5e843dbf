package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
	"github.com/actiondesk/action-tracker/internal/domain/repositories"
	usecaseErrors "github.com/actiondesk/action-tracker/internal/usecase/errors"
)

// Service defines meeting operations
type Service interface {
	Create(ctx context.Context, input CreateInput) (*entities.Meeting, error)
	Get(ctx context.Context, id uint) (*entities.Meeting, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error)
}

type meetingService struct {
	meetingRepo repositories.MeetingRepository
}

// NewService creates a new meeting service
func NewService(meetingRepo repositories.MeetingRepository) Service {
	return &meetingService{meetingRepo: meetingRepo}
}

// CreateInput represents input for creating a meeting
type CreateInput struct {
	Title        string
	Transcript   string
	Participants []string
	StartedAt    *time.Time
}

// Create creates a new meeting
func (s *meetingService) Create(ctx context.Context, input CreateInput) (*entities.Meeting, error) {
	participants := input.Participants
	if participants == nil {
		participants = []string{}
	}
	encoded, err := json.Marshal(participants)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participants: %w", err)
	}

	meeting := &entities.Meeting{
		Title:        input.Title,
		Transcript:   input.Transcript,
		Participants: datatypes.JSON(encoded),
		StartedAt:    input.StartedAt,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return meeting, nil
}

// Get retrieves a meeting by ID
func (s *meetingService) Get(ctx context.Context, id uint) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// List retrieves meetings, newest first
func (s *meetingService) List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}
