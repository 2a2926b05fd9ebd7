package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostInput is the payload of a create or update. Nil fields are left
// alone on update.
type PostInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Image    *string `json:"image"`
	Category *string `json:"category"`
}

// ListOptions selects a page of posts. Empty ids match every post.
type ListOptions struct {
	Page       int
	PerPage    int
	AuthorID   string
	CategoryID string
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts   []*models.Post
	Total   int
	Page    int
	PerPage int
}

// PostOptions configures a PostService.
type PostOptions struct {
	DefaultPageSize int
	MaxPageSize     int
	Logger          *slog.Logger
}

// PostService handles business logic for blog posts
type PostService struct {
	posts      repositories.PostRepository
	categories repositories.CategoryRepository
	resolver   resolver
	opts       PostOptions
	logger     *slog.Logger
	now        func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, categories repositories.CategoryRepository, opts PostOptions) *PostService {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 20
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PostService{
		posts:      posts,
		categories: categories,
		resolver:   resolver{users: users, categories: categories},
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// ListPosts returns a page of posts, newest first, with author and category
// names filled in.
func (s *PostService) ListPosts(opts ListOptions) (*PostPage, error) {
	page, perPage := opts.Page, opts.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.opts.DefaultPageSize
	}
	if perPage > s.opts.MaxPageSize {
		perPage = s.opts.MaxPageSize
	}

	filter := repositories.PostFilter{AuthorID: opts.AuthorID, CategoryID: opts.CategoryID}
	posts, total, err := s.posts.List(filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, storageError(err)
	}
	if err := s.resolver.expandPosts(posts...); err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total, Page: page, PerPage: perPage}, nil
}

// GetPost retrieves a post with its comments and every reference resolved.
func (s *PostService) GetPost(id string) (*models.Post, error) {
	post, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.expandPosts(post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost creates a post authored by the caller.
func (s *PostService) CreatePost(in PostInput, author Identity) (*models.Post, error) {
	post := &models.Post{
		Title:    strings.TrimSpace(deref(in.Title)),
		Content:  deref(in.Content),
		Image:    strings.TrimSpace(deref(in.Image)),
		Category: models.RefTo[models.CategorySummary](strings.TrimSpace(deref(in.Category))),
		Author:   models.RefTo[models.UserSummary](author.UserID),
	}
	if err := post.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	if err := s.requireCategory(post.Category.ID); err != nil {
		return nil, err
	}

	post.BeforeCreate(s.now())
	if err := s.posts.Create(post); err != nil {
		return nil, storageError(err)
	}
	s.logger.Info("post created", "post_id", post.ID, "author_id", author.UserID)

	if err := s.resolver.expandPosts(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a partial update. Only the author or an admin may
// update a post; the author never changes. The post is re-read and written
// in one transaction, so comments added meanwhile are kept.
func (s *PostService) UpdatePost(id string, in PostInput, caller Identity) (*models.Post, error) {
	post, err := modifyPost(s.posts, id, func(post *models.Post) error {
		if !caller.CanModify(post.Author.ID) {
			return unauthorizedError("User " + caller.UserID + " is not authorized to update this post")
		}

		if in.Title != nil {
			post.SetTitle(strings.TrimSpace(*in.Title))
		}
		if in.Content != nil {
			post.Content = *in.Content
		}
		if in.Image != nil {
			post.Image = strings.TrimSpace(*in.Image)
			if post.Image == "" {
				post.Image = models.DefaultImage
			}
		}
		categoryChanged := false
		if in.Category != nil {
			categoryID := strings.TrimSpace(*in.Category)
			categoryChanged = categoryID != post.Category.ID
			post.Category = models.RefTo[models.CategorySummary](categoryID)
		}
		if err := post.Validate(); err != nil {
			return validationError(err.Error())
		}
		if categoryChanged {
			if err := s.requireCategory(post.Category.ID); err != nil {
				return err
			}
		}
		post.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.resolver.expandPosts(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post together with its comments.
func (s *PostService) DeletePost(id string, caller Identity) error {
	post, err := s.load(id)
	if err != nil {
		return err
	}
	if !caller.CanModify(post.Author.ID) {
		return unauthorizedError("User " + caller.UserID + " is not authorized to delete this post")
	}
	if err := s.posts.Delete(id); err != nil {
		return lookupError(err, "No post with the id of %s", id)
	}
	s.logger.Info("post deleted", "post_id", id, "comments", post.CommentCount(), "by", caller.UserID)
	return nil
}

func (s *PostService) load(id string) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "No post with the id of %s", id)
	}
	return post, nil
}

// modifyPost runs fn as an atomic read-modify-write of post id. Service
// errors from fn pass through; repository failures are translated.
func modifyPost(posts repositories.PostRepository, id string, fn func(post *models.Post) error) (*models.Post, error) {
	post, err := posts.Modify(id, fn)
	if err == nil {
		return post, nil
	}
	if KindOf(err) != 0 {
		return nil, err
	}
	return nil, lookupError(err, "No post with the id of %s", id)
}

func (s *PostService) requireCategory(id string) error {
	_, err := s.categories.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError("No category with the id of %s", id)
	}
	if err != nil {
		return storageError(err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
