package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
	"github.com/actiondesk/action-tracker/internal/domain/repositories"
)

// actionItemRepository implements the ActionItemRepository interface
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// Create inserts a new action item
func (r *actionItemRepository) Create(ctx context.Context, item *entities.ActionItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateBatch inserts a set of action items in a single statement
func (r *actionItemRepository) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

// FindByID retrieves an action item by ID, excluding soft-deleted records
func (r *actionItemRepository) FindByID(ctx context.Context, id uint) (*entities.ActionItem, error) {
	var item entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&item).Error

	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateFields writes only the given columns and refreshes updated_at
func (r *actionItemRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	return r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// SoftDelete marks the record deleted and stamps deleted_at
func (r *actionItemRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"updated_at": now,
		}).
		Error
}

// BulkSetStatus force-sets status for every non-deleted record in ids.
// A single UPDATE statement keeps the change atomic relative to
// concurrent readers; rows that do not match simply shrink the count.
func (r *actionItemRepository) BulkSetStatus(ctx context.Context, ids []uint, status entities.ActionItemStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Updates(map[string]interface{}{
			"status":            status,
			"status_changed_at": now,
			"updated_at":        now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// List retrieves action items with filters, newest first
func (r *actionItemRepository) List(ctx context.Context, filters repositories.ActionItemFilters) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem

	query := r.db.WithContext(ctx).Model(&entities.ActionItem{})

	if !filters.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filters.MeetingID != nil {
		query = query.Where("meeting_id = ?", *filters.MeetingID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	query = query.Order("created_at DESC")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&items).Error
	return items, err
}
