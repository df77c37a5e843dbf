package repositories

import (
	"context"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
)

// ActionItemRepository defines the interface for action item data access.
// Reads exclude soft-deleted records unless a filter asks for them.
type ActionItemRepository interface {
	// Create inserts a new action item and assigns its ID
	Create(ctx context.Context, item *entities.ActionItem) error

	// CreateBatch inserts a set of action items in a single statement
	CreateBatch(ctx context.Context, items []*entities.ActionItem) error

	// FindByID retrieves an action item by ID, excluding soft-deleted
	// records; a deleted item surfaces as gorm.ErrRecordNotFound
	FindByID(ctx context.Context, id uint) (*entities.ActionItem, error)

	// UpdateFields writes only the given columns to the record and
	// refreshes updated_at; transition validation is the service's job
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// SoftDelete marks the record deleted and stamps deleted_at
	SoftDelete(ctx context.Context, id uint) error

	// BulkSetStatus force-sets status on every non-deleted record in
	// ids with a single UPDATE statement and returns the number of
	// rows actually affected; missing ids shrink the count, they are
	// not an error
	BulkSetStatus(ctx context.Context, ids []uint, status entities.ActionItemStatus) (int64, error)

	// List retrieves action items with filters, newest first
	List(ctx context.Context, filters ActionItemFilters) ([]*entities.ActionItem, error)
}

// ActionItemFilters represents filter options for listing action items
type ActionItemFilters struct {
	MeetingID      *uint
	Status         *entities.ActionItemStatus
	IncludeDeleted bool
	Limit          int
	Offset         int
}
