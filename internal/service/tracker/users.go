package tracker

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

// CreateUser adds a user account. Requires MANAGE_USERS.
func (s *Service) CreateUser(actor models.User, user models.User) (models.User, error) {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageUsers); err != nil {
		return models.User{}, err
	}

	if user.Username == "" || user.Password == "" {
		return models.User{}, errors.New("username and password are required")
	}
	if !user.Role.IsValid() {
		return models.User{}, fmt.Errorf("unknown role %q", user.Role)
	}
	for _, existing := range schema.Users {
		if existing.Username == user.Username {
			return models.User{}, fmt.Errorf("username %q already taken", user.Username)
		}
	}

	user.ID = uuid.NewString()
	next := schema.Clone()
	next.Users = append(next.Users, user)
	if err := s.store.Save(next); err != nil {
		return models.User{}, err
	}
	s.logger.Info("user created", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return user, nil
}

// UpdateUser replaces an existing user record.
func (s *Service) UpdateUser(actor models.User, user models.User) error {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageUsers); err != nil {
		return err
	}

	idx := schema.UserIndex(user.ID)
	if idx < 0 {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	if !user.Role.IsValid() {
		return fmt.Errorf("unknown role %q", user.Role)
	}

	next := schema.Clone()
	next.Users[idx] = user
	return s.store.Save(next)
}

// DeleteUser removes a user account. The last remaining user cannot be
// deleted, since that would re-open the setup phase without a reset.
func (s *Service) DeleteUser(actor models.User, userID string) error {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageUsers); err != nil {
		return err
	}

	idx := schema.UserIndex(userID)
	if idx < 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if len(schema.Users) == 1 {
		return errors.New("cannot delete the last user")
	}

	next := schema.Clone()
	next.Users = append(next.Users[:idx], next.Users[idx+1:]...)
	return s.store.Save(next)
}

// SaveGroup creates a group or, when the id matches an existing one, replaces
// it. Requires MANAGE_USERS.
func (s *Service) SaveGroup(actor models.User, group models.Group) (models.Group, error) {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageUsers); err != nil {
		return models.Group{}, err
	}

	for _, p := range group.Permissions {
		if !p.IsValid() {
			return models.Group{}, fmt.Errorf("unknown permission %q", p)
		}
	}

	next := schema.Clone()
	if group.ID == "" {
		group.ID = uuid.NewString()
		next.Groups = append(next.Groups, group)
	} else {
		idx := next.GroupIndex(group.ID)
		if idx < 0 {
			return models.Group{}, fmt.Errorf("group %s: %w", group.ID, ErrNotFound)
		}
		next.Groups[idx] = group
	}

	if err := s.store.Save(next); err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// DeleteGroup removes a group. Members keep their dangling groupId and simply
// end up with an empty permission set.
func (s *Service) DeleteGroup(actor models.User, groupID string) error {
	schema := s.store.Load()
	if _, err := s.authorize(schema, actor, models.PermManageUsers); err != nil {
		return err
	}

	idx := schema.GroupIndex(groupID)
	if idx < 0 {
		return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}

	next := schema.Clone()
	next.Groups = append(next.Groups[:idx], next.Groups[idx+1:]...)
	return s.store.Save(next)
}
