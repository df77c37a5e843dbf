package entities

import (
	"strings"
	"time"
)

// ActionItemStatus represents the lifecycle status of an action item
type ActionItemStatus string

const (
	ActionItemStatusTodo       ActionItemStatus = "todo"
	ActionItemStatusInProgress ActionItemStatus = "in_progress"
	ActionItemStatusDone       ActionItemStatus = "done"
	ActionItemStatusCancelled  ActionItemStatus = "cancelled"
)

// ActionItemPriority represents the priority of an action item
type ActionItemPriority string

const (
	ActionItemPriorityHigh   ActionItemPriority = "high"
	ActionItemPriorityMedium ActionItemPriority = "medium"
	ActionItemPriorityLow    ActionItemPriority = "low"
)

// forbiddenTransitions holds the status hops that are never allowed:
// completed items cannot be cancelled, and cancelled items must be
// reactivated through todo before moving forward again.
var forbiddenTransitions = map[[2]ActionItemStatus]struct{}{
	{ActionItemStatusDone, ActionItemStatusCancelled}:       {},
	{ActionItemStatusCancelled, ActionItemStatusInProgress}: {},
	{ActionItemStatusCancelled, ActionItemStatusDone}:       {},
}

// IsValidStatusTransition reports whether a single status hop is
// allowed. The identity transition is always a valid no-op. The check
// is stateless: it only looks at the proposed hop, never at history,
// so cancelled -> done is only reachable via two calls through todo.
func IsValidStatusTransition(from, to ActionItemStatus) bool {
	if from == to {
		return true
	}
	_, forbidden := forbiddenTransitions[[2]ActionItemStatus{from, to}]
	return !forbidden
}

// ParseActionItemStatus normalizes a raw status string to its canonical enum value
func ParseActionItemStatus(s string) (ActionItemStatus, bool) {
	switch ActionItemStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ActionItemStatusTodo:
		return ActionItemStatusTodo, true
	case ActionItemStatusInProgress:
		return ActionItemStatusInProgress, true
	case ActionItemStatusDone:
		return ActionItemStatusDone, true
	case ActionItemStatusCancelled:
		return ActionItemStatusCancelled, true
	}
	return "", false
}

// ParseActionItemPriority normalizes a raw priority string to its canonical enum value
func ParseActionItemPriority(s string) (ActionItemPriority, bool) {
	switch ActionItemPriority(strings.ToLower(strings.TrimSpace(s))) {
	case ActionItemPriorityHigh:
		return ActionItemPriorityHigh, true
	case ActionItemPriorityMedium:
		return ActionItemPriorityMedium, true
	case ActionItemPriorityLow:
		return ActionItemPriorityLow, true
	}
	return "", false
}

// ActionItem represents a follow-up task derived from a meeting
type ActionItem struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	MeetingID       uint               `gorm:"not null;index" json:"meeting_id"`
	Meeting         *Meeting           `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	Title           string             `gorm:"type:varchar(255);not null" json:"title"`
	Description     *string            `gorm:"type:text" json:"description,omitempty"`
	Owner           *string            `gorm:"type:varchar(100)" json:"owner,omitempty"`
	DueDate         *time.Time         `json:"due_date,omitempty"`
	Status          ActionItemStatus   `gorm:"type:varchar(50);not null;default:'todo';index" json:"status"`
	Priority        ActionItemPriority `gorm:"type:varchar(50);not null;default:'medium'" json:"priority"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	IsDeleted       bool               `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt       *time.Time         `json:"deleted_at,omitempty"`
	StatusChangedAt *time.Time         `json:"status_changed_at,omitempty"`
	CreatedAt       time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates an action item in its initial state: status
// todo, not deleted, status_changed_at unset until the first change.
func NewActionItem(meetingID uint, title string) *ActionItem {
	return &ActionItem{
		MeetingID: meetingID,
		Title:     title,
		Status:    ActionItemStatusTodo,
		Priority:  ActionItemPriorityMedium,
	}
}

// IsOpen checks whether the item still needs work
func (a *ActionItem) IsOpen() bool {
	return a.Status == ActionItemStatusTodo || a.Status == ActionItemStatusInProgress
}

// IsOverdue checks whether an open item is past its due date
func (a *ActionItem) IsOverdue(now time.Time) bool {
	return a.DueDate != nil && a.IsOpen() && now.After(*a.DueDate)
}
