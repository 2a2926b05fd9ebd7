package repositories

import (
	"errors"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// userRecord is the stored form of a user; the hash never leaves the store
// through the model's JSON encoding.
type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func toRecord(user *models.User) *userRecord {
	return &userRecord{User: *user, PasswordHash: user.PasswordHash}
}

func (r *userRecord) model() *models.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	return &u
}

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user and claims its email. ErrDuplicate is returned
// when the email is already taken.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		emailKey := entityKey(UserEmailKeyPrefix, models.NormalizeEmail(user.Email))
		if err := requireKey(txn, emailKey); err == nil {
			return ErrDuplicate
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		user.ID = NewID()
		if err := txn.Set(emailKey, []byte(user.ID)); err != nil {
			return err
		}
		return putEntity(txn, entityKey(UserKeyPrefix, user.ID), toRecord(user))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id string) (*models.User, error) {
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(UserKeyPrefix, id), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.model(), nil
}

// GetByEmail retrieves a user through the email index
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(UserEmailKeyPrefix, models.NormalizeEmail(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(UserKeyPrefix, string(id)), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.model(), nil
}

// GetMany loads every user in ids that exists. Missing ids are skipped.
func (r *BadgerUserRepository) GetMany(ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if _, seen := users[id]; seen || id == "" {
				continue
			}
			var rec userRecord
			err := getEntity(txn, entityKey(UserKeyPrefix, id), &rec)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			users[id] = rec.model()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates an existing user and moves the email index when the
// email changes.
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing userRecord
		if err := getEntity(txn, entityKey(UserKeyPrefix, user.ID), &existing); err != nil {
			return err
		}

		oldEmail := models.NormalizeEmail(existing.Email)
		newEmail := models.NormalizeEmail(user.Email)
		if oldEmail != newEmail {
			newKey := entityKey(UserEmailKeyPrefix, newEmail)
			if err := requireKey(txn, newKey); err == nil {
				return ErrDuplicate
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
			if err := txn.Delete(entityKey(UserEmailKeyPrefix, oldEmail)); err != nil {
				return err
			}
			if err := txn.Set(newKey, []byte(user.ID)); err != nil {
				return err
			}
		}
		return putEntity(txn, entityKey(UserKeyPrefix, user.ID), toRecord(user))
	})
}
