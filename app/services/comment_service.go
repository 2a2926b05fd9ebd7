package services

import (
	"log/slog"
	"strings"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments. Comments live inside
// their post, so every change is an atomic rewrite of the post document.
type CommentService struct {
	posts    repositories.PostRepository
	resolver resolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(posts repositories.PostRepository, users repositories.UserRepository, categories repositories.CategoryRepository, logger *slog.Logger) *CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentService{
		posts:    posts,
		resolver: resolver{users: users, categories: categories},
		logger:   logger,
		now:      time.Now,
	}
}

// AddComment appends a comment by the caller and returns the updated post.
func (s *CommentService) AddComment(postID string, caller Identity, text string) (*models.Post, error) {
	comment := &models.Comment{
		ID:   repositories.NewID(),
		User: models.RefTo[models.UserSummary](caller.UserID),
		Text: strings.TrimSpace(text),
	}
	comment.BeforeCreate(s.now())
	if err := comment.Validate(); err != nil {
		return nil, validationError(err.Error())
	}

	post, err := modifyPost(s.posts, postID, func(post *models.Post) error {
		if err := post.AddComment(comment); err != nil {
			return validationError(err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("comment added", "post_id", postID, "comment_id", comment.ID, "count", post.CommentCount())

	if err := s.resolver.expandPosts(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListComments returns the comments of a post in the order they were added.
func (s *CommentService) ListComments(postID string) ([]*models.Comment, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, lookupError(err, "No post with the id of %s", postID)
	}
	if err := s.resolver.expandPosts(post); err != nil {
		return nil, err
	}
	if post.Comments == nil {
		return []*models.Comment{}, nil
	}
	return post.Comments, nil
}

// RemoveComment deletes a comment. The comment's author, the post's author
// and admins may do so.
func (s *CommentService) RemoveComment(postID, commentID string, caller Identity) (*models.Post, error) {
	post, err := modifyPost(s.posts, postID, func(post *models.Post) error {
		comment, ok := post.FindComment(commentID)
		if !ok {
			return notFoundError("No comment with the id of %s", commentID)
		}
		if !caller.CanModify(comment.User.ID) && !caller.CanModify(post.Author.ID) {
			return unauthorizedError("User " + caller.UserID + " is not authorized to delete this comment")
		}
		return post.RemoveComment(commentID)
	})
	if err != nil {
		return nil, err
	}
	if err := s.resolver.expandPosts(post); err != nil {
		return nil, err
	}
	return post, nil
}
