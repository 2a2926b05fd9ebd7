package services

import (
	"strings"
	"testing"
	"time"

	"inkwell/app/logging"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/repositories/mock"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = strings.Repeat("k", 32)

// clock hands out strictly increasing times one second apart.
type clock struct {
	t time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	users      *mock.UserRepository
	categories *mock.CategoryRepository
	posts      *mock.PostRepository

	auth        *AuthService
	postSvc     *PostService
	commentSvc  *CommentService
	categorySvc *CategoryService
	clock       *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:      mock.NewUserRepository(),
		categories: mock.NewCategoryRepository(),
		posts:      mock.NewPostRepository(),
		clock:      newClock(),
	}
	logger := logging.Discard()

	f.auth = NewAuthService(f.users, NewTokenIssuer(testSecret, time.Hour), AuthOptions{
		BcryptCost:  bcrypt.MinCost,
		AdminEmails: []string{"Admin@Example.com"},
		Logger:      logger,
	})
	f.postSvc = NewPostService(f.posts, f.users, f.categories, PostOptions{
		DefaultPageSize: 2,
		MaxPageSize:     5,
		Logger:          logger,
	})
	f.commentSvc = NewCommentService(f.posts, f.users, f.categories, logger)
	f.categorySvc = NewCategoryService(f.categories)

	f.auth.now = f.clock.Now
	f.postSvc.now = f.clock.Now
	f.commentSvc.now = f.clock.Now
	f.categorySvc.now = f.clock.Now
	return f
}

func (f *fixture) register(t *testing.T, name, email string) Identity {
	t.Helper()
	res, err := f.auth.Register(RegisterInput{Name: name, Email: email, Password: "secret123"})
	require.NoError(t, err)
	return Identity{UserID: res.User.ID, Role: res.User.Role}
}

func (f *fixture) category(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := f.categorySvc.CreateCategory(CategoryInput{Name: &name})
	require.NoError(t, err)
	return category
}

func (f *fixture) post(t *testing.T, title, categoryID string, author Identity) *models.Post {
	t.Helper()
	content := "Body of " + title
	post, err := f.postSvc.CreatePost(PostInput{Title: &title, Content: &content, Category: &categoryID}, author)
	require.NoError(t, err)
	return post
}

func ptr(s string) *string {
	return &s
}

// newStoreFixture wires the services to an in-memory badger store instead of
// the mocks. It keeps the real clock so it is safe for concurrent use.
func newStoreFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := repositories.Open(repositories.StoreOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := logging.Discard()
	users, categories, posts := store.Users(), store.Categories(), store.Posts()
	return &fixture{
		auth: NewAuthService(users, NewTokenIssuer(testSecret, time.Hour), AuthOptions{
			BcryptCost: bcrypt.MinCost,
			Logger:     logger,
		}),
		postSvc:     NewPostService(posts, users, categories, PostOptions{DefaultPageSize: 2, MaxPageSize: 5, Logger: logger}),
		commentSvc:  NewCommentService(posts, users, categories, logger),
		categorySvc: NewCategoryService(categories),
	}
}
