package actionitem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
	usecaseErrors "github.com/actiondesk/action-tracker/internal/usecase/errors"
	"github.com/actiondesk/action-tracker/pkg/ai"
)

const (
	dueDateLayout     = "2006-01-02"
	extractionLockTTL = 5 * time.Minute
)

// Extractor produces candidate action items from a meeting transcript.
// Satisfied by ai.GroqClient; tests substitute a fake.
type Extractor interface {
	ExtractActionItems(ctx context.Context, transcript string, participants []string, meetingDate *time.Time) ([]ai.Candidate, error)
}

// RunLocker serializes extraction runs per meeting. Acquire returns
// false when another run already holds the key; Release only clears
// the key when the token matches the acquiring run.
type RunLocker interface {
	Acquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, token string) error
}

// ExtractFromMeeting runs the extraction producer against a meeting's
// transcript and persists every candidate as a todo action item in a
// single batch insert. A producer failure aborts the run with nothing
// saved.
func (s *actionItemService) ExtractFromMeeting(ctx context.Context, meetingID uint) ([]*entities.ActionItem, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	if !meeting.HasTranscript() {
		return nil, usecaseErrors.ErrMeetingHasNoContent
	}

	runID := uuid.New().String()
	lockKey := fmt.Sprintf("extract:meeting:%d", meetingID)

	acquired, err := s.locker.Acquire(ctx, lockKey, runID, extractionLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire extraction lock: %w", err)
	}
	if !acquired {
		return nil, usecaseErrors.ErrExtractionInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey, runID); err != nil {
			s.logger.Warn("extraction.lock_release_failed",
				zap.String("run_id", runID),
				zap.Error(err),
			)
		}
	}()

	s.logger.Info("extraction.started",
		zap.String("run_id", runID),
		zap.Uint("meeting_id", meetingID),
	)

	candidates, err := s.extractor.ExtractActionItems(
		ctx,
		meeting.Transcript,
		decodeParticipants(meeting.Participants),
		meeting.StartedAt,
	)
	if err != nil {
		s.logger.Error("extraction.failed",
			zap.String("run_id", runID),
			zap.Uint("meeting_id", meetingID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrExtractionFailed, err)
	}

	items := make([]*entities.ActionItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Title == "" {
			s.logger.Warn("extraction.candidate_skipped",
				zap.String("run_id", runID),
				zap.String("reason", "empty title"),
			)
			continue
		}

		item := entities.NewActionItem(meetingID, c.Title)
		if c.Description != "" {
			item.Description = &c.Description
		}
		if c.Owner != "" {
			item.Owner = &c.Owner
		}
		if priority, ok := entities.ParseActionItemPriority(c.Priority); ok {
			item.Priority = priority
		}
		item.DueDate = s.parseDueDate(runID, c.DueDate)

		items = append(items, item)
	}

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to save extracted action items: %w", err)
	}

	s.logger.Info("extraction.completed",
		zap.String("run_id", runID),
		zap.Uint("meeting_id", meetingID),
		zap.Int("items", len(items)),
	)

	return items, nil
}

// parseDueDate parses a producer-supplied due date; a malformed value
// is logged and dropped rather than failing the batch
func (s *actionItemService) parseDueDate(runID, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	due, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		s.logger.Warn("extraction.invalid_due_date",
			zap.String("run_id", runID),
			zap.String("due_date", raw),
		)
		return nil
	}
	return &due
}

func decodeParticipants(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var participants []string
	if err := json.Unmarshal([]byte(raw), &participants); err != nil {
		return nil
	}
	return participants
}
