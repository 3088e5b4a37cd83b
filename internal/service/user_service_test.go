package service

import (
	"context"
	"testing"

	"app/internal/model"
)

type fakeUserRepo struct {
	users   map[string]*model.User
	creates int
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, u *model.User) error {
	if r.users == nil {
		r.users = map[string]*model.User{}
	}
	r.creates++
	u.ID = int64(len(r.users) + 1)
	stored := *u
	r.users[u.Email] = &stored
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func TestGetOrCreate(t *testing.T) {
	t.Run("Creates On First Contact", func(t *testing.T) {
		repo := &fakeUserRepo{}
		svc := NewUserService(repo)

		u, err := svc.GetOrCreate(context.Background(), model.Identity{Email: "ada@example.com"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if u.Name != "ada" {
			t.Errorf("expected name fallback to local part, got %q", u.Name)
		}
		if repo.creates != 1 {
			t.Errorf("expected one create, got %d", repo.creates)
		}
	})

	t.Run("Never Updates Existing", func(t *testing.T) {
		repo := &fakeUserRepo{}
		svc := NewUserService(repo)

		first, err := svc.GetOrCreate(context.Background(), model.Identity{Email: "ada@example.com", Name: "Ada"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := svc.GetOrCreate(context.Background(), model.Identity{Email: "ada@example.com", Name: "Renamed"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if repo.creates != 1 {
			t.Errorf("expected one create, got %d", repo.creates)
		}
		if second.Name != first.Name {
			t.Errorf("expected stored name %q to stick, got %q", first.Name, second.Name)
		}
	})
}
