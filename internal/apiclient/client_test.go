package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListCourses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/user-courses" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("unexpected authorization header: %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"courseId": "c1", "prompt": "one", "content": [{"title": "Slide", "content": "text"}]}]`))
	}))
	defer server.Close()

	client := New(server.URL, "tok", nil)
	courses, err := client.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("ListCourses failed: %v", err)
	}
	if len(courses) != 1 || courses[0].CourseID != "c1" {
		t.Fatalf("unexpected courses: %+v", courses)
	}
	if len(courses[0].Content) != 1 || courses[0].Content[0].Content.Text != "text" {
		t.Errorf("unexpected slide content: %+v", courses[0].Content)
	}
}

func TestGenerateCourse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/user-courses" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body["prompt"] != "black holes" || body["type"] != "long" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"courseId": "c1", "prompt": "black holes", "type": "long", "content": []}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok", nil)
	course, err := client.GenerateCourse(context.Background(), "black holes", "long")
	if err != nil {
		t.Fatalf("GenerateCourse failed: %v", err)
	}
	if course.CourseID != "c1" {
		t.Errorf("unexpected course: %+v", course)
	}
}

func TestDeleteCourse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.URL.Query().Get("courseId"); got != "c 1" {
			t.Errorf("expected courseId to be escaped round-trip, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "deleted": [{"courseId": "c 1"}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok", nil)
	result, err := client.DeleteCourse(context.Background(), "c 1")
	if err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	if !result.Success || len(result.Deleted) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Missing courseId"}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok", nil)
	_, err := client.DeleteCourse(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Missing courseId") {
		t.Errorf("expected server message in error, got: %v", err)
	}
}

func TestGetOrCreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/user" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "email": "alice@example.com", "name": "Alice"}`))
	}))
	defer server.Close()

	client := New(server.URL, "tok", nil)
	user, err := client.GetOrCreateUser(context.Background())
	if err != nil {
		t.Fatalf("GetOrCreateUser failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}
