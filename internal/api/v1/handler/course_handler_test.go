package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type fakeCourseService struct {
	courses   []model.Course
	generated *model.Course
	deleted   []model.Course
	genErr    error
}

func (s *fakeCourseService) List(ctx context.Context, identity model.Identity) ([]model.Course, error) {
	return s.courses, nil
}

func (s *fakeCourseService) Generate(ctx context.Context, identity model.Identity, prompt, rawType string) (*model.Course, error) {
	if s.genErr != nil {
		return nil, s.genErr
	}
	return s.generated, nil
}

func (s *fakeCourseService) Delete(ctx context.Context, identity model.Identity, courseID string) ([]model.Course, error) {
	return s.deleted, nil
}

var _ service.CourseService = (*fakeCourseService)(nil)

func newCourseHandler(svc service.CourseService) *CourseHandler {
	return NewCourseHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func authed(r *http.Request) *http.Request {
	identity := model.Identity{Email: "alice@example.com", Name: "Alice"}
	return r.WithContext(middleware.WithIdentity(r.Context(), identity))
}

func TestListCourses(t *testing.T) {
	t.Run("Returns Courses", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{courses: []model.Course{
			{CourseID: "c2", UserID: "alice@example.com", Prompt: "two"},
			{CourseID: "c1", UserID: "alice@example.com", Prompt: "one"},
		}})

		req := authed(httptest.NewRequest(http.MethodGet, "/api/user-courses", nil))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("expected 2 courses, got %d", len(resp))
		}
		if resp[0]["courseId"] != "c2" {
			t.Errorf("expected newest course first, got %v", resp[0]["courseId"])
		}
	})

	t.Run("No Identity Is Unauthorized", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{})

		req := httptest.NewRequest(http.MethodGet, "/api/user-courses", nil)
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["error"] != "Unauthorized" {
			t.Errorf("expected Unauthorized envelope, got %v", resp)
		}
	})
}

func TestGenerateCourse(t *testing.T) {
	t.Run("Returns Course", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{generated: &model.Course{
			CourseID: "c1",
			UserID:   "alice@example.com",
			Prompt:   "black holes",
			Type:     model.CourseTypeQuick,
			Content:  []model.Slide{{Title: "One"}},
		}})

		body := strings.NewReader(`{"prompt": "black holes", "type": "quick"}`)
		req := authed(httptest.NewRequest(http.MethodPost, "/api/user-courses", body))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["courseId"] != "c1" || resp["prompt"] != "black holes" {
			t.Errorf("unexpected response: %v", resp)
		}
	})

	t.Run("Missing Prompt Is Bad Request", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{})

		req := authed(httptest.NewRequest(http.MethodPost, "/api/user-courses", strings.NewReader(`{"type": "quick"}`)))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Invalid JSON Is Bad Request", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{})

		req := authed(httptest.NewRequest(http.MethodPost, "/api/user-courses", strings.NewReader(`{`)))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Upstream Failure Is Internal Error", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{genErr: context.DeadlineExceeded})

		body := strings.NewReader(`{"prompt": "topic"}`)
		req := authed(httptest.NewRequest(http.MethodPost, "/api/user-courses", body))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["error"] == "" {
			t.Error("expected error envelope")
		}
	})
}

func TestDeleteCourse(t *testing.T) {
	t.Run("Returns Deleted Set", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{deleted: []model.Course{{CourseID: "c1"}}})

		req := authed(httptest.NewRequest(http.MethodDelete, "/api/user-courses?courseId=c1", nil))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Success bool             `json:"success"`
			Deleted []map[string]any `json:"deleted"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Success || len(resp.Deleted) != 1 {
			t.Errorf("unexpected envelope: %+v", resp)
		}
	})

	t.Run("Non Owned Course Reports Empty Set", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{deleted: []model.Course{}})

		req := authed(httptest.NewRequest(http.MethodDelete, "/api/user-courses?courseId=other", nil))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Success bool             `json:"success"`
			Deleted []map[string]any `json:"deleted"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Success {
			t.Error("expected success true for empty delete")
		}
		if resp.Deleted == nil || len(resp.Deleted) != 0 {
			t.Errorf("expected empty deleted array, got %v", resp.Deleted)
		}
	})

	t.Run("Missing CourseId Is Bad Request", func(t *testing.T) {
		h := newCourseHandler(&fakeCourseService{})

		req := authed(httptest.NewRequest(http.MethodDelete, "/api/user-courses", nil))
		rec := httptest.NewRecorder()
		h.handleCourses(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
