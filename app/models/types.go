package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultImage is stored when a post is created without an image.
const DefaultImage = "no-image.jpg"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required,max=50"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role" validate:"required,oneof=user admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Category groups posts under a name.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,max=50"`
	Description string    `json:"description" validate:"max=500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Post represents a blog post with its embedded comments.
type Post struct {
	ID        string                     `json:"id"`
	Title     string                     `json:"title" validate:"required,max=100"`
	Slug      string                     `json:"slug"`
	Content   string                     `json:"content" validate:"required"`
	Image     string                     `json:"image"`
	Category  Reference[CategorySummary] `json:"category" validate:"-"`
	Author    Reference[UserSummary]     `json:"author" validate:"-"`
	Comments  []*Comment                 `json:"comments" validate:"-"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// Comment is embedded in a post and never stored on its own.
type Comment struct {
	ID        string                 `json:"id"`
	User      Reference[UserSummary] `json:"user" validate:"-"`
	Text      string                 `json:"text" validate:"required,max=1000"`
	CreatedAt time.Time              `json:"createdAt"`
}

// UserSummary is the denormalized view of a user inside other documents.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategorySummary is the denormalized view of a category inside a post.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RefID implements Identifiable.
func (u UserSummary) RefID() string { return u.ID }

// RefID implements Identifiable.
func (c CategorySummary) RefID() string { return c.ID }
