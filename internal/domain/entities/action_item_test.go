package entities

import (
	"testing"
	"time"
)

var allStatuses = []ActionItemStatus{
	ActionItemStatusTodo,
	ActionItemStatusInProgress,
	ActionItemStatusDone,
	ActionItemStatusCancelled,
}

func TestIsValidStatusTransition_Identity(t *testing.T) {
	for _, s := range allStatuses {
		if !IsValidStatusTransition(s, s) {
			t.Fatalf("identity transition %s -> %s should be valid", s, s)
		}
	}
}

func TestIsValidStatusTransition_Matrix(t *testing.T) {
	forbidden := map[[2]ActionItemStatus]bool{
		{ActionItemStatusDone, ActionItemStatusCancelled}:       true,
		{ActionItemStatusCancelled, ActionItemStatusInProgress}: true,
		{ActionItemStatusCancelled, ActionItemStatusDone}:       true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := IsValidStatusTransition(from, to)
			want := !forbidden[[2]ActionItemStatus{from, to}]
			if got != want {
				t.Fatalf("transition %s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIsValidStatusTransition_ReopenAndReactivate(t *testing.T) {
	if !IsValidStatusTransition(ActionItemStatusDone, ActionItemStatusInProgress) {
		t.Fatal("done -> in_progress (reopen) should be valid")
	}
	if !IsValidStatusTransition(ActionItemStatusCancelled, ActionItemStatusTodo) {
		t.Fatal("cancelled -> todo (reactivate) should be valid")
	}
}

func TestNewActionItem_Defaults(t *testing.T) {
	item := NewActionItem(7, "Send follow-up notes")

	if item.MeetingID != 7 {
		t.Fatalf("unexpected meeting id %d", item.MeetingID)
	}
	if item.Status != ActionItemStatusTodo {
		t.Fatalf("new item status = %s, want todo", item.Status)
	}
	if item.Priority != ActionItemPriorityMedium {
		t.Fatalf("new item priority = %s, want medium", item.Priority)
	}
	if item.IsDeleted {
		t.Fatal("new item should not be deleted")
	}
	if item.StatusChangedAt != nil {
		t.Fatal("status_changed_at must be unset at creation")
	}
}

func TestParseActionItemStatus(t *testing.T) {
	if s, ok := ParseActionItemStatus(" In_Progress "); !ok || s != ActionItemStatusInProgress {
		t.Fatalf("expected in_progress, got %q ok=%v", s, ok)
	}
	if _, ok := ParseActionItemStatus("archived"); ok {
		t.Fatal("unknown status must not parse")
	}
}

func TestParseActionItemPriority(t *testing.T) {
	if p, ok := ParseActionItemPriority("HIGH"); !ok || p != ActionItemPriorityHigh {
		t.Fatalf("expected high, got %q ok=%v", p, ok)
	}
	if _, ok := ParseActionItemPriority("urgent"); ok {
		t.Fatal("unknown priority must not parse")
	}
}

func TestActionItemIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)

	item := NewActionItem(1, "overdue check")
	item.DueDate = &past
	if !item.IsOverdue(now) {
		t.Fatal("open item past due date should be overdue")
	}

	item.Status = ActionItemStatusDone
	if item.IsOverdue(now) {
		t.Fatal("done item should never be overdue")
	}
}
