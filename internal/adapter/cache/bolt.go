package cache

import (
	"fmt"

	"go.etcd.io/bbolt"

	"molvec/internal/port"
)

var namespaces = [][]byte{
	[]byte(port.NamespaceGeometry),
	[]byte(port.NamespaceDescriptors),
	[]byte(port.NamespaceShingles),
}

// BoltCache is a directory-backed persistent cache. Each namespace maps
// to its own bucket. Entries are never updated in place with different
// content: keys are content hashes, so redundant writes by concurrent
// workers are harmless.
type BoltCache struct {
	db *bbolt.DB
}

// NewBoltCache opens (or creates) the cache database at path.
func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, ns := range namespaces {
			if _, err := tx.CreateBucketIfNotExists(ns); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", ns, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCache{db: db}, nil
}

func (c *BoltCache) Get(namespace, key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(namespace))
		if b == nil {
			return fmt.Errorf("unknown cache namespace: %s", namespace)
		}
		if data := b.Get([]byte(key)); data != nil {
			value = make([]byte, len(data))
			copy(value, data)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

func (c *BoltCache) Put(namespace, key string, value []byte) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(namespace))
		if b == nil {
			return fmt.Errorf("unknown cache namespace: %s", namespace)
		}
		return b.Put([]byte(key), value)
	})
}

func (c *BoltCache) Count(namespace string) (int, error) {
	var n int
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(namespace))
		if b == nil {
			return fmt.Errorf("unknown cache namespace: %s", namespace)
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

func (c *BoltCache) Clear(namespace string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(namespace)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(namespace))
		return err
	})
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}
