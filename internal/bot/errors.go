package bot

import "errors"

// ErrRoleNotFound is returned (wrapped) by Platform.RoleByName when no role
// in the guild matches the configured display name.
var ErrRoleNotFound = errors.New("role not found")
