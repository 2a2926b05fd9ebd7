package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix      = "user:"
	UserEmailKeyPrefix = "user_email:"
	CategoryKeyPrefix  = "category:"
	PostKeyPrefix      = "post:"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// NewID returns a time ordered id so that key order follows creation order.
// Embedded entities such as comments use it too.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func entityKey(prefix, id string) []byte {
	return []byte(prefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the document stored under key into entity.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

// putEntity stores entity under key.
func putEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// requireKey returns ErrNotFound unless key exists.
func requireKey(txn *badger.Txn, key []byte) error {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

// scanPrefix calls fn with the value of every key under prefix. With
// reverse set the keys are visited from last to first.
func scanPrefix(txn *badger.Txn, prefix string, reverse bool, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.Reverse = reverse
	it := txn.NewIterator(opts)
	defer it.Close()

	seek := []byte(prefix)
	if reverse {
		seek = append([]byte(prefix), 0xFF)
	}
	for it.Seek(seek); it.ValidForPrefix([]byte(prefix)); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
