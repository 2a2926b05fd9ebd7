package repositories

import (
	"fmt"
	"io"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Store owns the badger database that backs every repository.
type Store struct {
	db       *badger.DB
	mutex    sync.RWMutex
	dbPath   string
	inMemory bool
}

// StoreOptions configures Open.
type StoreOptions struct {
	// Path is ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   badger.Logger
}

// Open opens (or creates) the badger database described by opts.
func Open(opts StoreOptions) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	badgerOpts = badgerOpts.
		WithLogger(opts.Logger).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", opts.Path, err)
	}
	return &Store{
		db:       db,
		dbPath:   opts.Path,
		inMemory: opts.InMemory,
	}, nil
}

// DB returns the underlying badger handle.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Path is the on-disk location, empty for in-memory stores.
func (s *Store) Path() string {
	if s.inMemory {
		return ""
	}
	return s.dbPath
}

// Users returns the user repository backed by this store.
func (s *Store) Users() *BadgerUserRepository {
	return NewBadgerUserRepository(s.db)
}

// Categories returns the category repository backed by this store.
func (s *Store) Categories() *BadgerCategoryRepository {
	return NewBadgerCategoryRepository(s.db)
}

// Posts returns the post repository backed by this store.
func (s *Store) Posts() *BadgerPostRepository {
	return NewBadgerPostRepository(s.db)
}

// Close closes the database.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Close()
}

// Clear drops every key.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.DropAll()
}

// Backup writes a full backup to w.
func (s *Store) Backup(w io.Writer) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, err := s.db.Backup(w, 0)
	return err
}

// Load restores a backup produced by Backup.
func (s *Store) Load(r io.Reader) (err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	return s.db.Load(r, 4)
}
