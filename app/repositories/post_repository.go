package repositories

import (
	"errors"
	"sort"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB. Comments
// live inside the post document.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		post.ID = NewID()
		return putEntity(txn, entityKey(PostKeyPrefix, post.ID), post.Collapsed())
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(PostKeyPrefix, id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves a page of posts matching filter, newest first
func (r *BadgerPostRepository) List(filter PostFilter, limit, offset int) ([]*models.Post, int, error) {
	var matched []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, PostKeyPrefix, true, func(val []byte) error {
			var post models.Post
			if err := unmarshalEntity(val, &post); err != nil {
				return err
			}
			if matchesFilter(&post, filter) {
				matched = append(matched, &post)
			}
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}

	SortNewestFirst(matched)
	return paginate(matched, limit, offset), len(matched), nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, post.Collapsed())
	})
}

// maxConflictRetries bounds how often Modify reruns after a write conflict.
const maxConflictRetries = 128

// Modify loads a post, hands it to fn and stores the result in a single
// transaction. fn may run more than once when a concurrent write conflicts,
// so it must only change the post it is given. An error from fn aborts the
// write and is returned unchanged.
func (r *BadgerPostRepository) Modify(id string, fn func(post *models.Post) error) (*models.Post, error) {
	var (
		post models.Post
		err  error
	)
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			post = models.Post{}
			key := entityKey(PostKeyPrefix, id)
			if err := getEntity(txn, key, &post); err != nil {
				return err
			}
			if err := fn(&post); err != nil {
				return err
			}
			post.ID = id
			return putEntity(txn, key, post.Collapsed())
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete deletes a post, and with it every embedded comment
func (r *BadgerPostRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, id)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func matchesFilter(post *models.Post, filter PostFilter) bool {
	if filter.AuthorID != "" && post.Author.ID != filter.AuthorID {
		return false
	}
	if filter.CategoryID != "" && post.Category.ID != filter.CategoryID {
		return false
	}
	return true
}

// SortNewestFirst orders posts by creation time, newest first. The sort is
// stable so equal timestamps keep their incoming order.
func SortNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func paginate(posts []*models.Post, limit, offset int) []*models.Post {
	if offset >= len(posts) {
		return []*models.Post{}
	}
	end := len(posts)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return posts[offset:end]
}
