package actionitem

// CreateActionItemRequest represents the request to create an action item
type CreateActionItemRequest struct {
	MeetingID   uint    `json:"meeting_id" validate:"required"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Owner       *string `json:"owner,omitempty" validate:"omitempty,max=100"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Priority    string  `json:"priority,omitempty" validate:"omitempty,item_priority"`
}

// UpdateActionItemRequest represents a partial update. The handler
// tracks which keys were present in the request body, so a field
// missing here and a field explicitly set to null are different
// operations.
type UpdateActionItemRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Description *string `json:"description,omitempty"`
	Owner       *string `json:"owner,omitempty" validate:"omitempty,max=100"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty"`
}

// UpdateStatusRequest represents the request to change only the status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BatchUpdateStatusRequest represents a bulk status change
type BatchUpdateStatusRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1,max=100,unique"`
	Status string `json:"status" validate:"required"`
}

// ListActionItemsRequest represents query parameters for listing action items
type ListActionItemsRequest struct {
	MeetingID      *uint   `query:"meeting_id"`
	Status         *string `query:"status"`
	IncludeDeleted bool    `query:"include_deleted"`
	Limit          int     `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset         int     `query:"offset" validate:"omitempty,min=0"`
}
