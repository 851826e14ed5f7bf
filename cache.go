package trackgen

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"
)

const layoutsBucket = "layouts"

// LayoutCache remembers the last generated layout of every record, so that a
// regeneration that moves bits is noticed.
type LayoutCache struct {
	st     storage
	logger *slog.Logger
}

// OpenLayoutCache opens a Bolt-backed cache at path, or an in-memory one when
// path is empty.
func OpenLayoutCache(path string, logger *slog.Logger) (*LayoutCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &LayoutCache{st: newMemStorage(), logger: logger}, nil
	}
	bdb, err := bbolt.Open(path, 0o644, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("trackgen: layout cache: %w", err)
	}
	return &LayoutCache{st: newBoltStorage(bdb), logger: logger}, nil
}

func (c *LayoutCache) Close() error {
	return c.st.Close()
}

// Get returns the cached manifest of a record, or nil.
func (c *LayoutCache) Get(schema, record string) (*Manifest, error) {
	var result *Manifest
	err := c.view(func(tx storageTx) error {
		b := tx.Bucket(layoutsBucket)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(schema + "." + record))
		if raw == nil {
			return nil
		}
		result = new(Manifest)
		return MsgPack.Decode(raw, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Record stores the manifests and returns the drift against the previously
// cached layouts. Every drift entry is logged as a warning.
func (c *LayoutCache) Record(manifests ...*Manifest) ([]Drift, error) {
	var drifts []Drift
	err := c.update(func(tx storageTx) error {
		b, err := tx.CreateBucket(layoutsBucket)
		if err != nil {
			return err
		}
		for _, m := range manifests {
			key := []byte(m.Key())
			if raw := b.Get(key); raw != nil {
				var old Manifest
				if err := MsgPack.Decode(raw, &old); err != nil {
					c.logger.Warn("trackgen: discarding unreadable cache entry", "key", m.Key(), "err", err)
				} else {
					for _, d := range CompareLayouts(&old, m) {
						c.logger.Warn("trackgen: layout drift", "schema", m.Schema, "drift", d.String(), "previous_run", old.RunID, "run", m.RunID)
						drifts = append(drifts, d)
					}
				}
			}
			raw, err := MsgPack.Encode(m)
			if err != nil {
				return err
			}
			if err := b.Put(key, raw); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("trackgen: layout cache: %w", err)
	}
	return drifts, nil
}

// List returns cached manifests in key order.
func (c *LayoutCache) List() ([]*Manifest, error) {
	var result []*Manifest
	err := c.view(func(tx storageTx) error {
		b := tx.Bucket(layoutsBucket)
		if b == nil {
			return nil
		}
		cur := b.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			m := new(Manifest)
			if err := MsgPack.Decode(v, m); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			result = append(result, m)
		}
		return nil
	})
	return result, err
}

// Forget drops the cached layouts of one schema and returns how many were
// removed.
func (c *LayoutCache) Forget(schema string) (int, error) {
	var n int
	err := c.update(func(tx storageTx) error {
		b := tx.Bucket(layoutsBucket)
		if b == nil {
			return nil
		}
		prefix := []byte(schema + ".")
		var keys [][]byte
		cur := b.Cursor()
		for k, v := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cur.Next() {
			var m Manifest
			if err := MsgPack.Decode(v, &m); err == nil && m.Schema != schema {
				continue
			}
			keys = append(keys, bytes.Clone(k))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = len(keys)
		return nil
	})
	return n, err
}

// Clear drops every cached layout.
func (c *LayoutCache) Clear() error {
	return c.update(func(tx storageTx) error {
		err := tx.DeleteBucket(layoutsBucket)
		if errors.Is(err, ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

// Len returns the number of cached layouts.
func (c *LayoutCache) Len() (int, error) {
	var n int
	err := c.view(func(tx storageTx) error {
		if b := tx.Bucket(layoutsBucket); b != nil {
			n = b.KeyCount()
		}
		return nil
	})
	return n, err
}
