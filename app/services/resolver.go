package services

import (
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// resolver denormalizes the references of stored posts. References whose
// target no longer exists are left collapsed.
type resolver struct {
	users      repositories.UserRepository
	categories repositories.CategoryRepository
}

func (r resolver) expandPosts(posts ...*models.Post) error {
	userIDs := make(map[string]struct{})
	categoryIDs := make(map[string]struct{})
	for _, post := range posts {
		userIDs[post.Author.ID] = struct{}{}
		categoryIDs[post.Category.ID] = struct{}{}
		for _, comment := range post.Comments {
			userIDs[comment.User.ID] = struct{}{}
		}
	}

	users, err := r.users.GetMany(keys(userIDs))
	if err != nil {
		return storageError(err)
	}
	categories, err := r.categories.GetMany(keys(categoryIDs))
	if err != nil {
		return storageError(err)
	}

	for _, post := range posts {
		if user, ok := users[post.Author.ID]; ok {
			post.Author = models.Expand(user.Summary())
		}
		if category, ok := categories[post.Category.ID]; ok {
			post.Category = models.Expand(category.Summary())
		}
		for _, comment := range post.Comments {
			if user, ok := users[comment.User.ID]; ok {
				comment.User = models.Expand(user.Summary())
			}
		}
	}
	return nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
