package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/actiondesk/action-tracker/internal/domain/entities"
	"github.com/actiondesk/action-tracker/internal/domain/repositories"
	"github.com/actiondesk/action-tracker/internal/usecase/actionitem"
	usecaseErrors "github.com/actiondesk/action-tracker/internal/usecase/errors"
	"github.com/actiondesk/action-tracker/pkg/validator"
)

// stubService lets each test pin the behavior of the one method it
// exercises
type stubService struct {
	getFn         func(ctx context.Context, id uint) (*entities.ActionItem, error)
	createFn      func(ctx context.Context, input actionitem.CreateInput) (*entities.ActionItem, error)
	updateFn      func(ctx context.Context, id uint, patch actionitem.Patch) (*entities.ActionItem, error)
	deleteFn      func(ctx context.Context, id uint) error
	batchFn       func(ctx context.Context, ids []uint, status string) (int64, error)
	listFn        func(ctx context.Context, filters repositories.ActionItemFilters) ([]*entities.ActionItem, error)
	extractFn     func(ctx context.Context, meetingID uint) ([]*entities.ActionItem, error)
	lastPatch     actionitem.Patch
	lastPatchedID uint
}

func (s *stubService) Get(ctx context.Context, id uint) (*entities.ActionItem, error) {
	return s.getFn(ctx, id)
}

func (s *stubService) Create(ctx context.Context, input actionitem.CreateInput) (*entities.ActionItem, error) {
	return s.createFn(ctx, input)
}

func (s *stubService) Update(ctx context.Context, id uint, patch actionitem.Patch) (*entities.ActionItem, error) {
	s.lastPatch = patch
	s.lastPatchedID = id
	return s.updateFn(ctx, id, patch)
}

func (s *stubService) UpdateStatus(ctx context.Context, id uint, status string) (*entities.ActionItem, error) {
	return s.Update(ctx, id, actionitem.Patch{Status: &status})
}

func (s *stubService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubService) BatchUpdateStatus(ctx context.Context, ids []uint, status string) (int64, error) {
	return s.batchFn(ctx, ids, status)
}

func (s *stubService) List(ctx context.Context, filters repositories.ActionItemFilters) ([]*entities.ActionItem, error) {
	return s.listFn(ctx, filters)
}

func (s *stubService) ExtractFromMeeting(ctx context.Context, meetingID uint) ([]*entities.ActionItem, error) {
	return s.extractFn(ctx, meetingID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func setupRouter(svc actionitem.Service) *echo.Echo {
	e := newTestEcho()
	h := NewActionItemHandler(svc, zap.NewNop())
	rt := NewRouter(nil, h, nil)
	rt.Setup(e)
	return e
}

func TestGetActionItem_NotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, id uint) (*entities.ActionItem, error) {
			return nil, usecaseErrors.ErrActionItemNotFound
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodGet, "/v1/action-items/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["code"] != "ACTION_ITEM_NOT_FOUND" {
		t.Fatalf("unexpected error code: %v", body["code"])
	}
}

func TestGetActionItem_NonNumericID(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, id uint) (*entities.ActionItem, error) {
			t.Fatal("service should not be called for a bad id")
			return nil, nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodGet, "/v1/action-items/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateStatus_RejectedTransition(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id uint, patch actionitem.Patch) (*entities.ActionItem, error) {
			return nil, &usecaseErrors.InvalidStatusTransitionError{
				From: entities.ActionItemStatusDone,
				To:   entities.ActionItemStatusCancelled,
			}
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodPatch, "/v1/action-items/7/status", `{"status":"cancelled"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["code"] != "INVALID_TRANSITION" {
		t.Fatalf("unexpected error code: %v", body["code"])
	}
	details, _ := body["details"].(map[string]interface{})
	if details["from"] != "done" || details["to"] != "cancelled" {
		t.Fatalf("unexpected transition details: %v", details)
	}
}

func TestUpdateActionItem_PresenceMask(t *testing.T) {
	item := entities.NewActionItem(1, "keep")
	item.ID = 7
	svc := &stubService{
		updateFn: func(ctx context.Context, id uint, patch actionitem.Patch) (*entities.ActionItem, error) {
			return item, nil
		},
	}
	e := setupRouter(svc)

	// description present but null clears; owner absent stays untouched
	rec := doRequest(e, http.MethodPut, "/v1/action-items/7", `{"title":"new title","description":null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	patch := svc.lastPatch
	if patch.Title == nil || *patch.Title != "new title" {
		t.Fatalf("title not carried: %+v", patch)
	}
	if !patch.DescriptionSet || patch.Description != nil {
		t.Fatalf("expected explicit-null description, got set=%v value=%v", patch.DescriptionSet, patch.Description)
	}
	if patch.OwnerSet || patch.NotesSet || patch.DueDateSet {
		t.Fatalf("absent fields must not be marked set: %+v", patch)
	}
	if svc.lastPatchedID != 7 {
		t.Fatalf("expected id 7, got %d", svc.lastPatchedID)
	}
}

func TestUpdateActionItem_DueDateParsing(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id uint, patch actionitem.Patch) (*entities.ActionItem, error) {
			return entities.NewActionItem(1, "x"), nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodPut, "/v1/action-items/7", `{"due_date":"2026-09-15"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.lastPatch.DueDateSet || svc.lastPatch.DueDate == nil {
		t.Fatalf("due date not carried: %+v", svc.lastPatch)
	}
	if got := svc.lastPatch.DueDate.Format("2006-01-02"); got != "2026-09-15" {
		t.Fatalf("unexpected due date: %s", got)
	}

	rec = doRequest(e, http.MethodPut, "/v1/action-items/7", `{"due_date":"15/09/2026"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", rec.Code)
	}
}

func TestUpdateActionItem_EmptyBody(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id uint, patch actionitem.Patch) (*entities.ActionItem, error) {
			t.Fatal("service should not be called for an empty body")
			return nil, nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodPut, "/v1/action-items/7", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBatchUpdateStatus_RouteAndResponse(t *testing.T) {
	var gotIDs []uint
	var gotStatus string
	svc := &stubService{
		batchFn: func(ctx context.Context, ids []uint, status string) (int64, error) {
			gotIDs = ids
			gotStatus = status
			return 2, nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodPatch, "/v1/action-items/batch/status", `{"ids":[3,9,12],"status":"done"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotIDs) != 3 || gotStatus != "done" {
		t.Fatalf("service saw ids=%v status=%q", gotIDs, gotStatus)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["updated_count"] != float64(2) {
		t.Fatalf("unexpected updated_count: %v", body["updated_count"])
	}
	if _, ok := body["ids"]; !ok {
		t.Fatal("response missing ids")
	}
}

func TestBatchUpdateStatus_DuplicateIDsRejectedByValidation(t *testing.T) {
	svc := &stubService{
		batchFn: func(ctx context.Context, ids []uint, status string) (int64, error) {
			t.Fatal("service should not be called for duplicate ids")
			return 0, nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodPatch, "/v1/action-items/batch/status", `{"ids":[3,3],"status":"done"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateActionItem_ValidationFailures(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, input actionitem.CreateInput) (*entities.ActionItem, error) {
			t.Fatal("service should not be called for invalid input")
			return nil, nil
		},
	}
	e := setupRouter(svc)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"meeting_id":1}`},
		{"missing meeting", `{"title":"x"}`},
		{"bad priority", `{"meeting_id":1,"title":"x","priority":"urgent"}`},
		{"bad due date", `{"meeting_id":1,"title":"x","due_date":"tomorrow"}`},
		{"owner too long", `{"meeting_id":1,"title":"x","owner":"` + strings.Repeat("a", 101) + `"}`},
	}
	for _, tc := range cases {
		rec := doRequest(e, http.MethodPost, "/v1/action-items", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", tc.name, rec.Code, rec.Body.String())
		}
	}
}

func TestUpdateActionItem_OwnerTooLong(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id uint, patch actionitem.Patch) (*entities.ActionItem, error) {
			t.Fatal("service should not be called for an over-long owner")
			return nil, nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodPut, "/v1/action-items/7", `{"owner":"`+strings.Repeat("a", 101)+`"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteActionItem_NoContent(t *testing.T) {
	deleted := uint(0)
	svc := &stubService{
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodDelete, "/v1/action-items/11", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != 11 {
		t.Fatalf("expected delete of 11, got %d", deleted)
	}
}

func TestListActionItems_Filters(t *testing.T) {
	var gotFilters repositories.ActionItemFilters
	svc := &stubService{
		listFn: func(ctx context.Context, filters repositories.ActionItemFilters) ([]*entities.ActionItem, error) {
			gotFilters = filters
			return nil, nil
		},
	}
	e := setupRouter(svc)

	rec := doRequest(e, http.MethodGet, "/v1/action-items?meeting_id=4&status=in_progress&include_deleted=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotFilters.MeetingID == nil || *gotFilters.MeetingID != 4 {
		t.Fatalf("meeting filter not carried: %+v", gotFilters)
	}
	if gotFilters.Status == nil || *gotFilters.Status != entities.ActionItemStatusInProgress {
		t.Fatalf("status filter not carried: %+v", gotFilters)
	}
	if !gotFilters.IncludeDeleted {
		t.Fatal("include_deleted not carried")
	}
	if gotFilters.Limit != defaultPageSize {
		t.Fatalf("expected default limit %d, got %d", defaultPageSize, gotFilters.Limit)
	}

	rec = doRequest(e, http.MethodGet, "/v1/action-items?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotFilters.Limit != 5 {
		t.Fatalf("explicit limit not carried, got %d", gotFilters.Limit)
	}

	rec = doRequest(e, http.MethodGet, "/v1/action-items?status=bogus", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status filter, got %d", rec.Code)
	}
}
