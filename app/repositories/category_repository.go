package repositories

import (
	"errors"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCategoryRepository implements CategoryRepository using BadgerDB
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

// Create creates a new category. Names are not required to be unique.
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		category.ID = NewID()
		return putEntity(txn, entityKey(CategoryKeyPrefix, category.ID), category)
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(CategoryKeyPrefix, id), &category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetMany loads every category in ids that exists. Missing ids are skipped.
func (r *BadgerCategoryRepository) GetMany(ids []string) (map[string]*models.Category, error) {
	categories := make(map[string]*models.Category, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if _, seen := categories[id]; seen || id == "" {
				continue
			}
			var category models.Category
			err := getEntity(txn, entityKey(CategoryKeyPrefix, id), &category)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			categories[id] = &category
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// List retrieves every category in creation order
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	categories := []*models.Category{}
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, CategoryKeyPrefix, false, func(val []byte) error {
			var category models.Category
			if err := unmarshalEntity(val, &category); err != nil {
				return err
			}
			categories = append(categories, &category)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Update updates an existing category
func (r *BadgerCategoryRepository) Update(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(CategoryKeyPrefix, category.ID)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return putEntity(txn, key, category)
	})
}

// Delete deletes a category by ID. Posts referencing it are left alone.
func (r *BadgerCategoryRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(CategoryKeyPrefix, id)
		if err := requireKey(txn, key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
