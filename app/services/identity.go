package services

import "inkwell/app/models"

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID string
	Role   models.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// CanModify reports whether the caller owns a resource authored by
// authorID. Admins own everything.
func (id Identity) CanModify(authorID string) bool {
	return id.IsAdmin() || (id.UserID != "" && id.UserID == authorID)
}
