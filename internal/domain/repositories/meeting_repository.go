package repositories

import (
	"context"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create inserts a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uint) (*entities.Meeting, error)

	// Exists reports whether a meeting with the given ID exists
	Exists(ctx context.Context, id uint) (bool, error)

	// List retrieves meetings, newest first
	List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error)
}
