package trackgen

import (
	"errors"
	"maps"
	"slices"
	"sync"
)

var errNotWritable = errors.New("tx not writable")

// memStorage keeps buckets in plain maps. Writers hold the lock for the whole
// transaction and keep an undo log; readers share the lock.
type memStorage struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// newMemStorage returns a transient storage that lives as long as the
// process, used when no cache file is configured.
func newMemStorage() storage {
	return &memStorage{buckets: make(map[string]map[string][]byte)}
}

func (s *memStorage) BeginTx(writable bool) (storageTx, error) {
	if writable {
		s.mu.Lock()
	} else {
		s.mu.RLock()
	}
	return &memTx{s: s, writable: writable}, nil
}

func (s *memStorage) Close() error {
	return nil
}

type memTx struct {
	s        *memStorage
	writable bool
	done     bool
	undo     []func()
}

func (tx *memTx) Writable() bool { return tx.writable }

func (tx *memTx) Bucket(name string) storageBucket {
	m, ok := tx.s.buckets[name]
	if !ok {
		return nil
	}
	return &memBucket{tx: tx, m: m}
}

func (tx *memTx) CreateBucket(name string) (storageBucket, error) {
	if !tx.writable {
		return nil, errNotWritable
	}
	if b := tx.Bucket(name); b != nil {
		return b, nil
	}
	m := make(map[string][]byte)
	tx.s.buckets[name] = m
	tx.undo = append(tx.undo, func() { delete(tx.s.buckets, name) })
	return &memBucket{tx: tx, m: m}, nil
}

func (tx *memTx) DeleteBucket(name string) error {
	if !tx.writable {
		return errNotWritable
	}
	m, ok := tx.s.buckets[name]
	if !ok {
		return ErrBucketNotFound
	}
	delete(tx.s.buckets, name)
	tx.undo = append(tx.undo, func() { tx.s.buckets[name] = m })
	return nil
}

func (tx *memTx) Commit() error {
	if tx.done {
		return nil
	}
	if !tx.writable {
		return errNotWritable
	}
	tx.undo = nil
	tx.finish()
	return nil
}

func (tx *memTx) Rollback() error {
	if tx.done {
		return nil
	}
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
	tx.finish()
	return nil
}

func (tx *memTx) finish() {
	tx.done = true
	if tx.writable {
		tx.s.mu.Unlock()
	} else {
		tx.s.mu.RUnlock()
	}
}

type memBucket struct {
	tx *memTx
	m  map[string][]byte
}

func (b *memBucket) Get(key []byte) []byte {
	return b.m[string(key)]
}

func (b *memBucket) Put(key, value []byte) error {
	if !b.tx.writable {
		return errNotWritable
	}
	b.remember(string(key))
	b.m[string(key)] = slices.Clone(value)
	return nil
}

func (b *memBucket) Delete(key []byte) error {
	if !b.tx.writable {
		return errNotWritable
	}
	if _, ok := b.m[string(key)]; !ok {
		return nil
	}
	b.remember(string(key))
	delete(b.m, string(key))
	return nil
}

// remember logs how to restore key to its current state.
func (b *memBucket) remember(k string) {
	old, existed := b.m[k]
	b.tx.undo = append(b.tx.undo, func() {
		if existed {
			b.m[k] = old
		} else {
			delete(b.m, k)
		}
	})
}

func (b *memBucket) Cursor() storageCursor {
	return &memCursor{b: b, keys: slices.Sorted(maps.Keys(b.m)), pos: -1}
}

func (b *memBucket) KeyCount() int { return len(b.m) }

// memCursor walks the keys present when it was created.
type memCursor struct {
	b    *memBucket
	keys []string
	pos  int
}

func (c *memCursor) at() ([]byte, []byte) {
	for ; c.pos >= 0 && c.pos < len(c.keys); c.pos++ {
		if v, ok := c.b.m[c.keys[c.pos]]; ok {
			return []byte(c.keys[c.pos]), v
		}
	}
	return nil, nil
}

func (c *memCursor) First() ([]byte, []byte) {
	c.pos = 0
	return c.at()
}

func (c *memCursor) Seek(seek []byte) ([]byte, []byte) {
	c.pos, _ = slices.BinarySearch(c.keys, string(seek))
	return c.at()
}

func (c *memCursor) Next() ([]byte, []byte) {
	c.pos++
	return c.at()
}
