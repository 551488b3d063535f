package users

import (
	"context"
	"strings"
	"time"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/store"
)

// DefaultRole is assigned to users on first login.
const DefaultRole = "hr"

// Service persists HR user accounts in the document graph.
type Service struct {
	Store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

// UpsertFromAuth persists the identity delivered by OAuth. An existing user
// keeps its role and creation time; profile fields are refreshed.
func (s *Service) UpsertFromAuth(ctx context.Context, user domain.User) (domain.User, error) {
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return domain.User{}, domain.Validationf("upsert user: id and email are required")
	}

	var out domain.User
	err := s.Store.Update(ctx, func(g *domain.Graph) error {
		now := time.Now().UTC()
		for i := range g.Users {
			if g.Users[i].ID == user.ID {
				g.Users[i].Email = user.Email
				g.Users[i].FullName = user.FullName
				g.Users[i].PictureURL = user.PictureURL
				g.Users[i].UpdatedAt = now
				out = g.Users[i]
				return nil
			}
		}
		user.Role = DefaultRole
		user.CreatedAt = now
		user.UpdatedAt = now
		g.Users = append(g.Users, user)
		out = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return out, nil
}

// GetByID returns one user by id.
func (s *Service) GetByID(ctx context.Context, userID string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, domain.Validationf("get user: id is required")
	}
	var out domain.User
	err := s.Store.View(func(g *domain.Graph) error {
		for _, u := range g.Users {
			if u.ID == userID {
				out = u
				return nil
			}
		}
		return domain.NotFoundf("get user: id %s", userID)
	})
	return out, err
}
