package boltdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/zennotes/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketNotes    = []byte("notes")
	bucketPending  = []byte("pending")
	bucketMetadata = []byte("metadata")
)

var (
	_ storage.NoteStorage     = (*Storage)(nil)
	_ storage.MetadataStorage = (*Storage)(nil)
	_ storage.ChangeFeed      = (*Storage)(nil)
)

// defaultOpenTimeout ограничивает ожидание файловой блокировки BoltDB
const defaultOpenTimeout = 5 * time.Second

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db   *bbolt.DB
	now  func() time.Time
	path string

	subMu  sync.Mutex
	subs   map[int]chan storage.ChangeEvent
	nextID int

	closed bool

	// shared - файл БД открывается только на время транзакции,
	// чтобы несколько процессов (CLI и демон) работали с одним файлом
	shared bool
}

// New creates a new BoltDB storage instance that keeps the file open
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	s := newStorage(dbPath)
	s.db = db

	// Инициализируем buckets
	if err := s.initBuckets(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// NewShared creates a storage that opens the database file per transaction.
// BoltDB holds an exclusive file lock while open, so processes sharing one
// database must not keep it open between operations.
func NewShared(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	s := newStorage(dbPath)
	s.shared = true

	if err := s.initBuckets(db); err != nil {
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

func newStorage(dbPath string) *Storage {
	return &Storage{
		path: dbPath,
		now:  time.Now,
		subs: make(map[int]chan storage.ChangeEvent),
	}
}

func open(dbPath string) (*bbolt.DB, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: defaultOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}
	return db, nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.path
}

// Close closes the database connection and all subscriptions
func (s *Storage) Close() error {
	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.closed = true
	db := s.db
	s.db = nil
	s.subMu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketNotes, bucketPending, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// acquire возвращает открытую БД и функцию освобождения.
// В shared режиме файл открывается заново на каждую транзакцию.
func (s *Storage) acquire() (*bbolt.DB, func(), error) {
	s.subMu.Lock()
	closed, shared, db := s.closed, s.shared, s.db
	s.subMu.Unlock()

	if closed || (!shared && db == nil) {
		return nil, nil, storage.ErrStorageClosed
	}
	if !shared {
		return db, func() {}, nil
	}

	db, err := open(s.path)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// update выполняет read-write транзакцию
func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	db, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()
	return db.Update(fn)
}

// view выполняет read-only транзакцию
func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	db, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()
	return db.View(fn)
}
