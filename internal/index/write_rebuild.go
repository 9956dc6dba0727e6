package index

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"ssg/internal/domain/content"
)

// Entry is what the index keeps per post.
type Entry struct {
	Seq    int              `json:"seq"`
	Source string           `json:"source"`
	Meta   content.Metadata `json:"meta"`
}

type RebuildOptions struct {
	BuiltAt time.Time
}

// Rebuild replaces the whole index with posts, in the order given.
// Posts sharing a slug keep the first occurrence.
func (s *Store) Rebuild(posts []content.Post, opt RebuildOptions) error {
	if opt.BuiltAt.IsZero() {
		opt.BuiltAt = time.Now()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bPosts, bIdxOrder, bIdxPublished, bBuild} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
		}

		postsB, err := tx.CreateBucket(bPosts)
		if err != nil {
			return err
		}
		orderB, err := tx.CreateBucket(bIdxOrder)
		if err != nil {
			return err
		}
		pubB, err := tx.CreateBucket(bIdxPublished)
		if err != nil {
			return err
		}
		buildB, err := tx.CreateBucket(bBuild)
		if err != nil {
			return err
		}

		seq := 0
		for _, p := range posts {
			slug := strings.TrimSpace(p.Meta.Slug)
			if slug == "" || postsB.Get([]byte(slug)) != nil {
				continue
			}
			e := Entry{Seq: seq, Source: p.Source, Meta: p.Meta}
			eb, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := postsB.Put([]byte(slug), eb); err != nil {
				return err
			}
			if err := orderB.Put(makeSeqKey(seq), []byte(slug)); err != nil {
				return err
			}
			if err := pubB.Put(makePublishedKey(p.Meta.PublishedTime(), seq), []byte(slug)); err != nil {
				return err
			}
			seq++
		}

		if err := buildB.Put(kBuiltAt, []byte(opt.BuiltAt.UTC().Format(time.RFC3339Nano))); err != nil {
			return err
		}
		return buildB.Put(kCount, []byte(strconv.Itoa(seq)))
	})
}
