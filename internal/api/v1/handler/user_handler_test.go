package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/model"
	"app/internal/service"

	"github.com/rs/zerolog"
)

type fakeUserService struct {
	user *model.User
	err  error
}

func (s *fakeUserService) GetOrCreate(ctx context.Context, identity model.Identity) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

var _ service.UserService = (*fakeUserService)(nil)

func TestGetOrCreateUser(t *testing.T) {
	t.Run("Returns Profile", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{user: &model.User{
			ID:        1,
			Email:     "alice@example.com",
			Name:      "Alice",
			CreatedAt: time.Now(),
		}}, zerolog.Nop())

		req := authed(httptest.NewRequest(http.MethodPost, "/api/user", nil))
		rec := httptest.NewRecorder()
		h.getOrCreateUser(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["email"] != "alice@example.com" || resp["name"] != "Alice" {
			t.Errorf("unexpected response: %v", resp)
		}
	})

	t.Run("No Identity Is Unauthorized", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{}, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/user", nil)
		rec := httptest.NewRecorder()
		h.getOrCreateUser(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("Get Is Not Found", func(t *testing.T) {
		h := NewUserHandler(&fakeUserService{}, zerolog.Nop())

		req := authed(httptest.NewRequest(http.MethodGet, "/api/user", nil))
		rec := httptest.NewRecorder()
		h.getOrCreateUser(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
