package errors

import (
	"errors"
	"fmt"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
)

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Action item errors
var (
	ErrActionItemNotFound = errors.New("action item not found")
	ErrDuplicateBatchIDs  = errors.New("duplicate ids are not allowed in a batch update")
	ErrBatchTooLarge      = errors.New("batch update exceeds the maximum number of ids")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidPriority    = errors.New("invalid priority value")
)

// Meeting errors
var (
	ErrMeetingNotFound      = errors.New("meeting not found")
	ErrMeetingHasNoContent  = errors.New("meeting has no transcript to extract action items from")
	ErrExtractionInProgress = errors.New("an extraction is already running for this meeting")
	ErrExtractionFailed     = errors.New("action item extraction failed")
)

// InvalidStatusTransitionError reports a status hop rejected by the
// transition rules. The whole update carrying it is discarded.
type InvalidStatusTransitionError struct {
	From entities.ActionItemStatus
	To   entities.ActionItemStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// IsInvalidStatusTransition reports whether err is a rejected status hop
func IsInvalidStatusTransition(err error) bool {
	var target *InvalidStatusTransitionError
	return errors.As(err, &target)
}
