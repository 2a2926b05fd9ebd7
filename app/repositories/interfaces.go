package repositories

import "inkwell/app/models"

// PostFilter narrows a post listing. Empty fields match everything.
type PostFilter struct {
	AuthorID   string
	CategoryID string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetMany(ids []string) (map[string]*models.User, error)
	Update(user *models.User) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetMany(ids []string) (map[string]*models.Category, error)
	List() ([]*models.Category, error)
	Update(category *models.Category) error
	Delete(id string) error
}

// PostRepository defines the interface for post data access. List returns
// newest posts first together with the total number of matches. Modify is
// an atomic read-modify-write of one post.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List(filter PostFilter, limit, offset int) ([]*models.Post, int, error)
	Update(post *models.Post) error
	Modify(id string, fn func(post *models.Post) error) (*models.Post, error)
	Delete(id string) error
}
