package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"timetrack/internal/model"
	"timetrack/internal/repository"
)

// UserService provisions and looks up users. Users are created lazily on
// the first authenticated request that carries an unknown id; the default
// role is MEMBER unless the email is on the admin list.
type UserService struct {
	users       repository.UserRepositoryInterface
	adminEmails map[string]bool
	clock       Clock
}

func NewUserService(users repository.UserRepositoryInterface, adminEmails []string, clock Clock) *UserService {
	set := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
			set[e] = true
		}
	}
	return &UserService{users: users, adminEmails: set, clock: clock}
}

// EnsureUser returns the user for id, creating it from token claims when
// absent.
func (s *UserService) EnsureUser(ctx context.Context, id uuid.UUID, email, displayName string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if displayName == "" {
		displayName = email
	}
	role := model.RoleMember
	if s.adminEmails[email] {
		role = model.RoleAdmin
	}

	now := s.clock.Now()
	user = &model.User{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RoleFor returns the role a freshly registered user with this email gets.
func (s *UserService) RoleFor(email string) model.Role {
	if s.adminEmails[strings.ToLower(strings.TrimSpace(email))] {
		return model.RoleAdmin
	}
	return model.RoleMember
}

// Get returns a user by id, or nil when absent.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
