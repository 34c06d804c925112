package backend

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Resource names double as bucket names and URL prefixes.
const (
	ResourceUsers    = "users"
	ResourcePosts    = "posts"
	ResourceComments = "comments"

	idField  = "id"
	keyBytes = 8
)

// Resources lists every resource the store keeps, in route order.
var Resources = []string{ResourceUsers, ResourcePosts, ResourceComments}

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrUnknownResource = errors.New("unknown resource")
)

// Record is one JSON object as stored by the backend.
type Record map[string]any

// Store keeps resource records in BoltDB, one bucket per resource, keyed by id.
type Store struct {
	db *bolt.DB
}

// OpenStore opens (or creates) the BoltDB file at path.
func OpenStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, res := range Resources {
			if _, err := tx.CreateBucketIfNotExists([]byte(res)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the BoltDB store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// List returns the records of resource in id order whose integer fields equal filter's values.
func (s *Store) List(resource string, filter map[string]int) ([]Record, error) {
	out := make([]Record, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket, err := bucketFor(tx, resource)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(_, v []byte) error {
			rec, err := decodeRecord(v)
			if err != nil {
				return err
			}
			if matches(rec, filter) {
				out = append(out, rec)
			}
			return nil
		})
	})
	return out, err
}

// Get returns the record with the given id.
func (s *Store) Get(resource string, id int) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket, err := bucketFor(tx, resource)
		if err != nil {
			return err
		}
		rec, err = getRecord(bucket, id)
		return err
	})
	return rec, err
}

// Create stores rec under the next id of resource. Any id supplied by the caller is ignored.
func (s *Store) Create(resource string, rec Record) (Record, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRecord)
	}
	created := copyRecord(rec)
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := bucketFor(tx, resource)
		if err != nil {
			return err
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("next %s id: %w", resource, err)
		}
		created[idField] = int(seq)
		return putRecord(bucket, int(seq), created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Patch shallow-merges patch into the record with the given id. The id itself never changes.
func (s *Store) Patch(resource string, id int, patch Record) (Record, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRecord)
	}
	var updated Record
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := bucketFor(tx, resource)
		if err != nil {
			return err
		}
		current, err := getRecord(bucket, id)
		if err != nil {
			return err
		}
		for k, v := range patch {
			if k == idField {
				continue
			}
			current[k] = v
		}
		updated = current
		return putRecord(bucket, id, current)
	})
	return updated, err
}

// Delete removes the record with the given id.
func (s *Store) Delete(resource string, id int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := bucketFor(tx, resource)
		if err != nil {
			return err
		}
		key := encodeID(id)
		if key == nil || bucket.Get(key) == nil {
			return ErrNotFound
		}
		return bucket.Delete(key)
	})
}

// Reset replaces every bucket's content with seed and advances id sequences past the seeded ids.
func (s *Store) Reset(seed SeedData) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, res := range Resources {
			if err := tx.DeleteBucket([]byte(res)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return fmt.Errorf("drop %s: %w", res, err)
			}
			bucket, err := tx.CreateBucket([]byte(res))
			if err != nil {
				return fmt.Errorf("create %s: %w", res, err)
			}

			var maxID int
			for i, rec := range seed.For(res) {
				id, ok := intField(rec, idField)
				if !ok || id <= 0 {
					return fmt.Errorf("%w: %s[%d] needs a positive integer id", ErrInvalidRecord, res, i)
				}
				if bucket.Get(encodeID(id)) != nil {
					return fmt.Errorf("%w: duplicate %s id %d", ErrInvalidRecord, res, id)
				}
				if err := putRecord(bucket, id, copyRecord(rec)); err != nil {
					return err
				}
				maxID = max(maxID, id)
			}
			if err := bucket.SetSequence(uint64(maxID)); err != nil {
				return fmt.Errorf("set %s sequence: %w", res, err)
			}
		}
		return nil
	})
}

func bucketFor(tx *bolt.Tx, resource string) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(resource))
	if bucket == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return bucket, nil
}

func getRecord(bucket *bolt.Bucket, id int) (Record, error) {
	key := encodeID(id)
	if key == nil {
		return nil, ErrNotFound
	}
	value := bucket.Get(key)
	if value == nil {
		return nil, ErrNotFound
	}
	// value is only valid for the life of the transaction; decoding copies it.
	return decodeRecord(value)
}

func putRecord(bucket *bolt.Bucket, id int, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return bucket.Put(encodeID(id), raw)
}

func decodeRecord(value []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("decode stored record: %w", err)
	}
	return rec, nil
}

// encodeID returns the big-endian key for id, or nil for ids that cannot exist.
func encodeID(id int) []byte {
	if id <= 0 {
		return nil
	}
	buf := make([]byte, keyBytes)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

func matches(rec Record, filter map[string]int) bool {
	for field, want := range filter {
		got, ok := intField(rec, field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// intField reads an integral number from rec, accepting JSON and YAML decodings.
func intField(rec Record, field string) (int, bool) {
	switch v := rec[field].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
