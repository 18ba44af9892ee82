package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// RootBucket holds one nested bucket per history mode, which in turn holds
// one nested bucket per metric name.
const RootBucket = "points"

// Store persists metric history points in a BoltDB file.
type Store struct {
	db     *bbolt.DB
	dbPath string
}

// OpenStore opens (or creates) a history database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(RootBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create root bucket: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Record persists a metric point under (mode, metric). Keys are big-endian
// step numbers so scans come back in step order.
func (s *Store) Record(mode, metric string, step int, value float64) error {
	data, err := json.Marshal(Point{Step: step, Value: value})
	if err != nil {
		return fmt.Errorf("failed to marshal point: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		modeBucket, err := tx.Bucket([]byte(RootBucket)).CreateBucketIfNotExists([]byte(mode))
		if err != nil {
			return err
		}
		metricBucket, err := modeBucket.CreateBucketIfNotExists([]byte(metric))
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, uint64(step))
		return metricBucket.Put(key, data)
	})
}

// Load reads every stored series into a fresh in-memory History.
func (s *Store) Load() (*History, error) {
	h := New()

	err := s.db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket([]byte(RootBucket))
		return root.ForEach(func(modeKey, v []byte) error {
			if v != nil {
				return nil // Only nested buckets live at this level
			}
			modeBucket := root.Bucket(modeKey)
			return modeBucket.ForEach(func(metricKey, v []byte) error {
				if v != nil {
					return nil
				}
				metricBucket := modeBucket.Bucket(metricKey)
				return metricBucket.ForEach(func(_, data []byte) error {
					var p Point
					if err := json.Unmarshal(data, &p); err != nil {
						return fmt.Errorf("failed to unmarshal point: %w", err)
					}
					h.Append(string(modeKey), string(metricKey), p.Step, p.Value)
					return nil
				})
			})
		})
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
