package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	episodesBucket = []byte("episodes")
	detailsBucket  = []byte("details")
	topicsBucket   = []byte("topics")
	metaBucket     = []byte("metadata")

	metaKey = []byte("snapshot")
)

// Store is a bbolt snapshot of the three feeds. Records are keyed by their
// feed position so iteration returns them in feed order.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{episodesBucket, detailsBucket, topicsBucket, metaBucket} {
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

// OpenStore opens an existing snapshot read-only. It never creates the file,
// and several readers may hold the same snapshot open.
func OpenStore(dbPath string) (*Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", dbPath, err)
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func ordinalKey(i int, id string) []byte {
	return []byte(fmt.Sprintf("%08d:%s", i, id))
}

// replaceBucket drops and recreates a bucket inside tx so a save never leaves
// records from an older snapshot behind.
func replaceBucket(tx *bolt.Tx, name []byte) (*bolt.Bucket, error) {
	if tx.Bucket(name) != nil {
		if err := tx.DeleteBucket(name); err != nil {
			return nil, err
		}
	}
	return tx.CreateBucket(name)
}

// SaveCatalog replaces the episode index and topics.
func (s *Store) SaveCatalog(episodes []EpisodeSummary, topics []Topic) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		eb, err := replaceBucket(tx, episodesBucket)
		if err != nil {
			return err
		}
		for i, ep := range episodes {
			data, err := json.Marshal(ep)
			if err != nil {
				return err
			}
			if err := eb.Put(ordinalKey(i, ep.Slug), data); err != nil {
				return err
			}
		}

		tb, err := replaceBucket(tx, topicsBucket)
		if err != nil {
			return err
		}
		for i, t := range topics {
			data, err := json.Marshal(t)
			if err != nil {
				return err
			}
			if err := tb.Put(ordinalKey(i, t.Name), data); err != nil {
				return err
			}
		}
		return s.touchMeta(tx)
	})
}

// SaveDetails replaces the full episode records.
func (s *Store) SaveDetails(details []EpisodeDetail) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := replaceBucket(tx, detailsBucket)
		if err != nil {
			return err
		}
		for i, d := range details {
			data, err := json.Marshal(d)
			if err != nil {
				return err
			}
			if err := b.Put(ordinalKey(i, d.Slug), data); err != nil {
				return err
			}
		}
		return s.touchMeta(tx)
	})
}

func (s *Store) touchMeta(tx *bolt.Tx) error {
	meta := SnapshotMeta{
		BuiltAt:  time.Now().UTC(),
		Episodes: countKeys(tx.Bucket(episodesBucket)),
		Details:  countKeys(tx.Bucket(detailsBucket)),
		Topics:   countKeys(tx.Bucket(topicsBucket)),
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return tx.Bucket(metaBucket).Put(metaKey, data)
}

func countKeys(b *bolt.Bucket) int {
	n := 0
	_ = b.ForEach(func(_, _ []byte) error {
		n++
		return nil
	})
	return n
}

// Meta returns the snapshot description written by the last save.
func (s *Store) Meta() (*SnapshotMeta, error) {
	var meta SnapshotMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		var data []byte
		if b := tx.Bucket(metaBucket); b != nil {
			data = b.Get(metaKey)
		}
		if data == nil {
			return fmt.Errorf("snapshot metadata not found")
		}
		return json.Unmarshal(data, &meta)
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func readBucket[T any](db *bolt.DB, name []byte) ([]T, error) {
	var out []T
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(name)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_ []byte, v []byte) error {
			var rec T
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, rec)
			return nil
		})
	})
	return out, err
}

// LoadCatalog reads the index and topics. An empty snapshot is an error so
// callers never start on a blank catalog.
func (s *Store) LoadCatalog(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	episodes, err := readBucket[EpisodeSummary](s.db, episodesBucket)
	if err != nil {
		return nil, &LoadError{Stage: StageInit, Feed: "index", Err: err}
	}
	if len(episodes) == 0 {
		return nil, &LoadError{Stage: StageInit, Feed: "index", Err: fmt.Errorf("snapshot has no episodes")}
	}
	topics, err := readBucket[Topic](s.db, topicsBucket)
	if err != nil {
		return nil, &LoadError{Stage: StageInit, Feed: "topics", Err: err}
	}
	return &Catalog{Episodes: episodes, Topics: topics}, nil
}

// LoadDetails reads the full episode records.
func (s *Store) LoadDetails(ctx context.Context) ([]EpisodeDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	details, err := readBucket[EpisodeDetail](s.db, detailsBucket)
	if err != nil {
		return nil, &LoadError{Stage: StageDetail, Feed: "episodes", Err: err}
	}
	if len(details) == 0 {
		return nil, &LoadError{Stage: StageDetail, Feed: "episodes", Err: fmt.Errorf("snapshot has no episode details")}
	}
	return details, nil
}
