package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserService manages back-office operator accounts. Password hashing and
// verification live in the application layer; core stores the hash opaquely.
type UserService interface {
	List(ctx context.Context) []User
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*User, error)
	Add(ctx context.Context, name, email, role, passwordHash string) (*User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	engine *Engine
}

func NewUserService(engine *Engine) UserService {
	return &userService{engine: engine}
}

func (s *userService) List(ctx context.Context) []User {
	var out []User
	s.engine.View(func(st *State) {
		out = append(out, st.Users...)
	})
	return out
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*User, error) {
	var found *User
	s.engine.View(func(st *State) {
		for i := range st.Users {
			if strings.EqualFold(st.Users[i].Email, email) {
				cp := st.Users[i]
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return found, nil
}

func (s *userService) Add(ctx context.Context, name, email, role, passwordHash string) (*User, error) {
	var created User
	err := s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Users {
			if strings.EqualFold(st.Users[i].Email, email) {
				return nil, fmt.Errorf("user with email %s already exists", email)
			}
		}
		created = User{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			Role:         role,
			PasswordHash: passwordHash,
			CreatedAt:    time.Now().UTC(),
		}
		st.Users = append(st.Users, created)
		return []string{KeyUsers}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.engine.Update(ctx, func(st *State) ([]string, error) {
		for i := range st.Users {
			if st.Users[i].ID == id {
				st.Users = append(st.Users[:i], st.Users[i+1:]...)
				return []string{KeyUsers}, nil
			}
		}
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	})
}
