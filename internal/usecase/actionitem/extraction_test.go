package actionitem

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
	"github.com/actiondesk/action-tracker/internal/domain/repositories"
	usecaseErrors "github.com/actiondesk/action-tracker/internal/usecase/errors"
	"github.com/actiondesk/action-tracker/pkg/ai"
)

func TestExtractFromMeeting_SavesCandidatesAsTodo(t *testing.T) {
	svc, repo, _, extractor, _ := newTestService(t)
	extractor.candidates = []ai.Candidate{
		{Title: "Draft Q3 roadmap", Description: "one pager", Owner: "bob", DueDate: "2026-09-15", Priority: "high"},
		{Title: "Book offsite venue"},
	}

	items, err := svc.ExtractFromMeeting(context.Background(), 1)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := repo.raw(items[0].ID)
	if first.Status != entities.ActionItemStatusTodo {
		t.Fatalf("extracted item status = %s, want todo", first.Status)
	}
	if first.Priority != entities.ActionItemPriorityHigh {
		t.Fatalf("priority = %s, want high", first.Priority)
	}
	if first.DueDate == nil || !first.DueDate.Equal(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("due date not parsed: %v", first.DueDate)
	}

	second := repo.raw(items[1].ID)
	if second.Priority != entities.ActionItemPriorityMedium {
		t.Fatalf("missing priority should default to medium, got %s", second.Priority)
	}
}

func TestExtractFromMeeting_BadDueDateDoesNotFailBatch(t *testing.T) {
	svc, repo, _, extractor, _ := newTestService(t)
	extractor.candidates = []ai.Candidate{
		{Title: "Follow up with legal", DueDate: "next Tuesday"},
	}

	items, err := svc.ExtractFromMeeting(context.Background(), 1)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if got := repo.raw(items[0].ID); got.DueDate != nil {
		t.Fatalf("malformed due date must be stored as null, got %v", got.DueDate)
	}
}

func TestExtractFromMeeting_ProducerErrorSavesNothing(t *testing.T) {
	svc, repo, _, extractor, _ := newTestService(t)
	extractor.err = fmt.Errorf("upstream timeout")

	_, err := svc.ExtractFromMeeting(context.Background(), 1)
	if !errors.Is(err, usecaseErrors.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}

	items, _ := repo.List(context.Background(), repositories.ActionItemFilters{IncludeDeleted: true})
	if len(items) != 0 {
		t.Fatalf("no items may be saved on a failed extraction, got %d", len(items))
	}
}

func TestExtractFromMeeting_MeetingNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.ExtractFromMeeting(context.Background(), 42)
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestExtractFromMeeting_RequiresTranscript(t *testing.T) {
	svc, _, meetings, _, _ := newTestService(t)
	meetings.meetings[1].Transcript = "   "

	_, err := svc.ExtractFromMeeting(context.Background(), 1)
	if !errors.Is(err, usecaseErrors.ErrMeetingHasNoContent) {
		t.Fatalf("expected ErrMeetingHasNoContent, got %v", err)
	}
}

func TestExtractFromMeeting_ConcurrentRunRejected(t *testing.T) {
	svc, _, _, _, locker := newTestService(t)

	// Simulate a run already holding the per-meeting lock
	if ok, _ := locker.Acquire(context.Background(), "extract:meeting:1", "other-run", time.Minute); !ok {
		t.Fatal("setup lock acquire failed")
	}

	_, err := svc.ExtractFromMeeting(context.Background(), 1)
	if !errors.Is(err, usecaseErrors.ErrExtractionInProgress) {
		t.Fatalf("expected ErrExtractionInProgress, got %v", err)
	}
}

func TestExtractFromMeeting_ReleasesLock(t *testing.T) {
	svc, _, _, extractor, locker := newTestService(t)
	extractor.candidates = []ai.Candidate{{Title: "once"}}

	if _, err := svc.ExtractFromMeeting(context.Background(), 1); err != nil {
		t.Fatalf("first extract failed: %v", err)
	}
	if _, err := svc.ExtractFromMeeting(context.Background(), 1); err != nil {
		t.Fatalf("lock was not released after first run: %v", err)
	}
	if len(locker.held) != 0 {
		t.Fatalf("lock still held after runs: %v", locker.held)
	}
	if extractor.calls != 2 {
		t.Fatalf("extractor called %d times, want 2", extractor.calls)
	}
}
