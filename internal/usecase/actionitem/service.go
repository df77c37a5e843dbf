package actionitem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
	"github.com/actiondesk/action-tracker/internal/domain/repositories"
	usecaseErrors "github.com/actiondesk/action-tracker/internal/usecase/errors"
)

// MaxBatchSize caps the number of ids a batch status update may touch.
// The batch path skips per-item transition validation, so the id set
// is bounded to limit the blast radius of an unvalidated change.
const MaxBatchSize = 100

// Service defines action item management operations
type Service interface {
	Get(ctx context.Context, id uint) (*entities.ActionItem, error)
	Create(ctx context.Context, input CreateInput) (*entities.ActionItem, error)
	Update(ctx context.Context, id uint, patch Patch) (*entities.ActionItem, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*entities.ActionItem, error)
	Delete(ctx context.Context, id uint) error
	BatchUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error)
	List(ctx context.Context, filters repositories.ActionItemFilters) ([]*entities.ActionItem, error)
	ExtractFromMeeting(ctx context.Context, meetingID uint) ([]*entities.ActionItem, error)
}

type actionItemService struct {
	itemRepo    repositories.ActionItemRepository
	meetingRepo repositories.MeetingRepository
	extractor   Extractor
	locker      RunLocker
	logger      *zap.Logger
}

// NewService creates a new action item service
func NewService(
	itemRepo repositories.ActionItemRepository,
	meetingRepo repositories.MeetingRepository,
	extractor Extractor,
	locker RunLocker,
	logger *zap.Logger,
) Service {
	return &actionItemService{
		itemRepo:    itemRepo,
		meetingRepo: meetingRepo,
		extractor:   extractor,
		locker:      locker,
		logger:      logger,
	}
}

// CreateInput represents input for creating an action item
type CreateInput struct {
	MeetingID   uint
	Title       string
	Description *string
	Owner       *string
	DueDate     *time.Time
	Priority    string
}

// Patch describes a partial update. A nil pointer leaves the field
// untouched; the Set flags mark optional fields that were explicitly
// provided, so a present-but-null value clears the column instead of
// being mistaken for an absent one.
type Patch struct {
	Title    *string
	Status   *string
	Priority *string

	Description    *string
	DescriptionSet bool
	Owner          *string
	OwnerSet       bool
	DueDate        *time.Time
	DueDateSet     bool
	Notes          *string
	NotesSet       bool
}

// Get retrieves an action item by ID. Soft-deleted items surface as
// not found.
func (s *actionItemService) Get(ctx context.Context, id uint) (*entities.ActionItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to get action item: %w", err)
	}
	return item, nil
}

// Create creates an action item under an existing meeting
func (s *actionItemService) Create(ctx context.Context, input CreateInput) (*entities.ActionItem, error) {
	exists, err := s.meetingRepo.Exists(ctx, input.MeetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check meeting: %w", err)
	}
	if !exists {
		return nil, usecaseErrors.ErrMeetingNotFound
	}

	item := entities.NewActionItem(input.MeetingID, input.Title)
	item.Description = input.Description
	item.Owner = input.Owner
	item.DueDate = input.DueDate

	if input.Priority != "" {
		priority, ok := entities.ParseActionItemPriority(input.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidPriority, input.Priority)
		}
		item.Priority = priority
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create action item: %w", err)
	}

	s.logger.Info("action_item.created",
		zap.Uint("action_item_id", item.ID),
		zap.Uint("meeting_id", item.MeetingID),
	)

	return item, nil
}

// Update applies a partial update. When the patch carries a status it
// is validated against the stored status first; a rejected transition
// discards the entire patch, including its non-status fields.
func (s *actionItemService) Update(ctx context.Context, id uint, patch Patch) (*entities.ActionItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.buildUpdateFields(item, patch)
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return item, nil
	}

	if err := s.itemRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("failed to update action item: %w", err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	s.logger.Info("action_item.updated",
		zap.Uint("action_item_id", id),
		zap.Strings("fields", keys),
	)

	return updated, nil
}

// buildUpdateFields turns a patch into the column set for a single
// write, stamping status_changed_at alongside a validated status hop
func (s *actionItemService) buildUpdateFields(item *entities.ActionItem, patch Patch) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if patch.Status != nil {
		newStatus, ok := entities.ParseActionItemStatus(*patch.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidStatus, *patch.Status)
		}
		if !entities.IsValidStatusTransition(item.Status, newStatus) {
			return nil, &usecaseErrors.InvalidStatusTransitionError{From: item.Status, To: newStatus}
		}
		fields["status"] = newStatus
		fields["status_changed_at"] = time.Now().UTC()
	}

	if patch.Priority != nil {
		priority, ok := entities.ParseActionItemPriority(*patch.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidPriority, *patch.Priority)
		}
		fields["priority"] = priority
	}

	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.DescriptionSet {
		fields["description"] = valueOrNull(patch.Description)
	}
	if patch.OwnerSet {
		fields["owner"] = valueOrNull(patch.Owner)
	}
	if patch.DueDateSet {
		if patch.DueDate != nil {
			fields["due_date"] = *patch.DueDate
		} else {
			fields["due_date"] = nil
		}
	}
	if patch.NotesSet {
		fields["notes"] = valueOrNull(patch.Notes)
	}

	return fields, nil
}

func valueOrNull(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// UpdateStatus updates only the status, with the same validation and
// stamping rules as Update
func (s *actionItemService) UpdateStatus(ctx context.Context, id uint, status string) (*entities.ActionItem, error) {
	return s.Update(ctx, id, Patch{Status: &status})
}

// Delete soft-deletes an action item. Deleted items are invisible to
// Get, so a second delete reports not found.
func (s *actionItemService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.itemRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete action item: %w", err)
	}

	s.logger.Info("action_item.deleted", zap.Uint("action_item_id", id))
	return nil
}

// BatchUpdateStatus force-sets the status of every existing,
// non-deleted item in ids and returns the affected count. Per-item
// transition validation is intentionally skipped on this path; the
// single-statement store write is what keeps the change atomic.
func (s *actionItemService) BatchUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, usecaseErrors.ErrInvalidInput
	}
	if len(ids) > MaxBatchSize {
		return 0, usecaseErrors.ErrBatchTooLarge
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return 0, usecaseErrors.ErrDuplicateBatchIDs
		}
		seen[id] = struct{}{}
	}

	newStatus, ok := entities.ParseActionItemStatus(status)
	if !ok {
		return 0, fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidStatus, status)
	}

	count, err := s.itemRepo.BulkSetStatus(ctx, ids, newStatus)
	if err != nil {
		return 0, fmt.Errorf("failed to batch update status: %w", err)
	}

	s.logger.Info("action_item.batch_status_updated",
		zap.Int("requested", len(ids)),
		zap.Int64("updated", count),
		zap.String("status", string(newStatus)),
	)

	return count, nil
}

// List retrieves action items with filters
func (s *actionItemService) List(ctx context.Context, filters repositories.ActionItemFilters) ([]*entities.ActionItem, error) {
	items, err := s.itemRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, nil
}
