package auth

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

// ErrAlreadyInitialized is returned when initial setup is attempted against a
// store that already has users.
var ErrAlreadyInitialized = errors.New("store already initialized")

// adminGroupName is the default group created alongside the first admin user.
const adminGroupName = "Administrators"

// InitialSetup creates the first admin user and a default group holding every
// permission, transitioning the store out of the setup phase permanently.
func InitialSetup(schema models.DatabaseSchema, username, password, displayName string) (models.DatabaseSchema, models.User, error) {
	if len(schema.Users) > 0 {
		return schema, models.User{}, ErrAlreadyInitialized
	}
	if username == "" || password == "" {
		return schema, models.User{}, errors.New("username and password are required")
	}

	next := schema.Clone()

	group := models.Group{
		ID:          uuid.NewString(),
		Name:        adminGroupName,
		Permissions: models.AllPermissions(),
	}
	admin := models.User{
		ID:          uuid.NewString(),
		Username:    username,
		Password:    password,
		DisplayName: displayName,
		Role:        models.RoleAdmin,
		GroupID:     group.ID,
	}

	next.Groups = append(next.Groups, group)
	next.Users = append(next.Users, admin)

	return next, admin, nil
}
