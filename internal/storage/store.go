package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bookmarksBucket = []byte("bookmarks")
	metaBucket      = []byte("metadata")

	lastLocationKey = []byte("last_location")
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) the bookmark database. timeout bounds the
// wait for the file lock held by another dentalink process.
func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bookmarksBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBookmark stores b keyed by its location, replacing an existing entry
// but keeping its original creation time.
func (s *Store) SaveBookmark(b *Bookmark) error {
	if b.Location == "" {
		return fmt.Errorf("bookmark location cannot be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bookmarksBucket)
		if existing := bucket.Get([]byte(b.Location)); existing != nil {
			var prev Bookmark
			if err := json.Unmarshal(existing, &prev); err == nil && !prev.CreatedAt.IsZero() {
				b.CreatedAt = prev.CreatedAt
			}
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = time.Now()
		}
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(b.Location), data)
	})
}

func (s *Store) GetBookmark(location string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bookmarksBucket).Get([]byte(location))
		if data == nil {
			return fmt.Errorf("bookmark %s: %w", location, ErrNotFound)
		}
		return json.Unmarshal(data, &b)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) IsBookmarked(location string) bool {
	found := false
	_ = s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bookmarksBucket).Get([]byte(location)) != nil
		return nil
	})
	return found
}

// ToggleBookmark saves b, or removes it when its location is already saved.
// It reports whether the location is bookmarked afterwards.
func (s *Store) ToggleBookmark(b *Bookmark) (bool, error) {
	if s.IsBookmarked(b.Location) {
		return false, s.DeleteBookmark(b.Location)
	}
	return true, s.SaveBookmark(b)
}

// ListBookmarks returns all bookmarks, newest first.
func (s *Store) ListBookmarks() ([]*Bookmark, error) {
	var bookmarks []*Bookmark
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bookmarksBucket).ForEach(func(_ []byte, v []byte) error {
			var b Bookmark
			if err := json.Unmarshal(v, &b); err != nil {
				return nil
			}
			bookmarks = append(bookmarks, &b)
			return nil
		})
	})
	sort.SliceStable(bookmarks, func(i, j int) bool {
		if bookmarks[i].CreatedAt.Equal(bookmarks[j].CreatedAt) {
			return bookmarks[i].Location < bookmarks[j].Location
		}
		return bookmarks[i].CreatedAt.After(bookmarks[j].CreatedAt)
	})
	return bookmarks, err
}

func (s *Store) DeleteBookmark(location string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bookmarksBucket).Delete([]byte(location))
	})
}

// SetLastLocation remembers where the user was for --resume.
func (s *Store) SetLastLocation(location string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(lastLocationKey, []byte(location))
	})
}

// LastLocation returns "" when nothing has been recorded.
func (s *Store) LastLocation() (string, error) {
	var location string
	err := s.db.View(func(tx *bolt.Tx) error {
		location = string(tx.Bucket(metaBucket).Get(lastLocationKey))
		return nil
	})
	return location, err
}
