package models

import "strings"

// NormalizeEmail is the canonical form used for lookups and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return ValidateStruct(u)
}

// Summary is the denormalized view embedded in posts and comments.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}

// Validate checks if the category meets all validation requirements
func (c *Category) Validate() error {
	return ValidateStruct(c)
}

// Summary is the denormalized view embedded in posts.
func (c *Category) Summary() CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name}
}
