package mock

import (
	"fmt"
	"sort"
	"sync"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// UserRepository is an in-memory repositories.UserRepository.
type UserRepository struct {
	users  map[string]*models.User
	nextID int
	mutex  sync.RWMutex
}

// CategoryRepository is an in-memory repositories.CategoryRepository.
type CategoryRepository struct {
	categories map[string]*models.Category
	order      []string
	nextID     int
	mutex      sync.RWMutex
}

// PostRepository is an in-memory repositories.PostRepository. Setting Err
// makes every call fail with it.
type PostRepository struct {
	posts  map[string]*models.Post
	order  []string
	nextID int
	mutex  sync.RWMutex
	Err    error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]*models.Category)}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
	m.order = nil
	m.nextID = 0
}

// UserRepository implementation
func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if models.NormalizeEmail(existing.Email) == models.NormalizeEmail(user.Email) {
			return repositories.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *UserRepository) GetByID(id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if models.NormalizeEmail(user.Email) == models.NormalizeEmail(email) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) GetMany(ids []string) (map[string]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := make(map[string]*models.User)
	for _, id := range ids {
		if user, exists := m.users[id]; exists {
			cp := *user
			users[id] = &cp
		}
	}
	return users, nil
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	for id, existing := range m.users {
		if id != user.ID && models.NormalizeEmail(existing.Email) == models.NormalizeEmail(user.Email) {
			return repositories.ErrDuplicate
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

// CategoryRepository implementation
func (m *CategoryRepository) Create(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.nextID++
	category.ID = fmt.Sprintf("category-%d", m.nextID)
	cp := *category
	m.categories[category.ID] = &cp
	m.order = append(m.order, category.ID)
	return nil
}

func (m *CategoryRepository) GetByID(id string) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	category, exists := m.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	cp := *category
	return &cp, nil
}

func (m *CategoryRepository) GetMany(ids []string) (map[string]*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	categories := make(map[string]*models.Category)
	for _, id := range ids {
		if category, exists := m.categories[id]; exists {
			cp := *category
			categories[id] = &cp
		}
	}
	return categories, nil
}

func (m *CategoryRepository) List() ([]*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	categories := []*models.Category{}
	for _, id := range m.order {
		if category, exists := m.categories[id]; exists {
			cp := *category
			categories = append(categories, &cp)
		}
	}
	return categories, nil
}

func (m *CategoryRepository) Update(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.categories[category.ID]; !exists {
		return repositories.ErrNotFound
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *CategoryRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.categories[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// PostRepository implementation. Posts are stored collapsed, like the
// badger repository does.
func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	post.ID = fmt.Sprintf("post-%d", m.nextID)
	m.posts[post.ID] = post.Collapsed()
	m.order = append(m.order, post.ID)
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post.Collapsed(), nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post.Collapsed()
	return nil
}

func (m *PostRepository) Modify(id string, fn func(post *models.Post) error) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	stored, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post := stored.Collapsed()
	if err := fn(post); err != nil {
		return nil, err
	}
	post.ID = id
	m.posts[id] = post.Collapsed()
	return post, nil
}

func (m *PostRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) List(filter repositories.PostFilter, limit, offset int) ([]*models.Post, int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, 0, m.Err
	}

	var posts []*models.Post
	// newest insertion first, then by creation time
	for i := len(m.order) - 1; i >= 0; i-- {
		post, exists := m.posts[m.order[i]]
		if !exists {
			continue
		}
		if filter.AuthorID != "" && post.Author.ID != filter.AuthorID {
			continue
		}
		if filter.CategoryID != "" && post.Category.ID != filter.CategoryID {
			continue
		}
		posts = append(posts, post.Collapsed())
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	total := len(posts)
	if offset >= total {
		return []*models.Post{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return posts[offset:end], total, nil
}
