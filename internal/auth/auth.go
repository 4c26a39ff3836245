// Package auth implements authentication, the group-based permission model and
// the bootstrap gating used before any mutation reaches the reconciler.
package auth

import (
	"errors"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

// ErrInvalidCredentials is returned when no stored user matches the supplied
// username and password pair.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Phase describes what the UI layer must do before mutations are allowed.
type Phase string

const (
	// PhaseSetupRequired means no users exist yet; the store is uninitialized
	// and must be routed through initial setup. The transition out of this
	// phase is permanent for a given store short of a full reset.
	PhaseSetupRequired Phase = "SETUP_REQUIRED"
	// PhaseLoginRequired means users exist and a session must be established.
	PhaseLoginRequired Phase = "LOGIN_REQUIRED"
)

// BootstrapPhase inspects the snapshot and reports the current gating phase.
func BootstrapPhase(schema models.DatabaseSchema) Phase {
	if len(schema.Users) == 0 {
		return PhaseSetupRequired
	}
	return PhaseLoginRequired
}

// Authenticate matches the supplied credentials against stored users by exact
// comparison. There is no rate limiting or lockout.
func Authenticate(schema models.DatabaseSchema, username, password string) (models.User, error) {
	for _, u := range schema.Users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// EffectivePermissions resolves a user's permission set. Admins hold every
// permission regardless of group membership; regular users inherit their
// group's set, and a missing or deleted group yields no permissions at all.
func EffectivePermissions(schema models.DatabaseSchema, user models.User) []models.Permission {
	if user.Role == models.RoleAdmin {
		return models.AllPermissions()
	}
	if user.GroupID == "" {
		return nil
	}
	idx := schema.GroupIndex(user.GroupID)
	if idx < 0 {
		return nil
	}
	return append([]models.Permission(nil), schema.Groups[idx].Permissions...)
}

// HasPermission reports whether the user may perform an operation gated by the
// given permission.
func HasPermission(schema models.DatabaseSchema, user models.User, perm models.Permission) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	if user.GroupID == "" {
		return false
	}
	idx := schema.GroupIndex(user.GroupID)
	if idx < 0 {
		return false
	}
	return schema.Groups[idx].Grants(perm)
}
