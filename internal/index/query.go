package index

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

type Order string

const (
	OrderDirectory Order = "directory"
	OrderPublished Order = "published"
)

type ListOptions struct {
	Order Order
	// Limit caps the result; zero means no limit.
	Limit int
}

type BuildInfo struct {
	BuiltAt time.Time
	Count   int
}

func (s *Store) Get(slug string) (Entry, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Entry{}, ErrNotFound
	}
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPosts)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	return e, err
}

func (s *Store) List(opt ListOptions) ([]Entry, error) {
	idxName := bIdxOrder
	if opt.Order == OrderPublished {
		idxName = bIdxPublished
	}

	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(idxName)
		postsB := tx.Bucket(bPosts)
		if idx == nil || postsB == nil {
			return nil
		}
		cur := idx.Cursor()
		for k, slug := cur.First(); k != nil; k, slug = cur.Next() {
			if opt.Limit > 0 && len(out) >= opt.Limit {
				break
			}
			v := postsB.Get(slug)
			if v == nil {
				continue
			}
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

func (s *Store) Info() (BuildInfo, error) {
	var info BuildInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuild)
		if b == nil {
			return ErrNotFound
		}
		t, err := time.Parse(time.RFC3339Nano, string(b.Get(kBuiltAt)))
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(string(b.Get(kCount)))
		if err != nil {
			return err
		}
		info = BuildInfo{BuiltAt: t, Count: n}
		return nil
	})
	return info, err
}
