// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Badger implements KV on top of BadgerDB: prefix-keyed records, with
// badger.Txn iterators backing the ordered prefix scans.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if absent) a Badger database at path.
func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open badger at %s: %w", path, err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Badger) Put(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *Badger) Delete(_ context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

func (b *Badger) List(_ context.Context, opts ListOptions) (ListResult, error) {
	var result ListResult
	result.Complete = true

	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = true
		iterOpts.Reverse = opts.Direction == Desc

		it := txn.NewIterator(iterOpts)
		defer it.Close()

		prefix := []byte(opts.Prefix)

		seek := prefix
		if opts.Cursor != "" {
			seek = nextSeekKey(opts.Cursor, opts.Direction)
		} else if iterOpts.Reverse {
			// A reverse seek lands on the largest key <= seek, and every key
			// under the prefix sorts after the bare prefix: start past them.
			seek = append([]byte(opts.Prefix), 0xFF)
		}

		limit := opts.Limit
		count := 0
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if opts.Cursor != "" && string(it.Item().Key()) == opts.Cursor {
				continue
			}
			if limit > 0 && count >= limit {
				result.Complete = false
				break
			}

			item := it.Item()
			key := string(item.KeyCopy(nil))
			err := item.Value(func(val []byte) error {
				result.Entries = append(result.Entries, Entry{Key: key, Value: append([]byte(nil), val...)})
				return nil
			})
			if err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return ListResult{}, err
	}

	if !result.Complete && len(result.Entries) > 0 {
		result.Cursor = result.Entries[len(result.Entries)-1].Key
	}
	return result, nil
}

// nextSeekKey computes the Badger iterator seek position that skips the
// entry at cursor (already returned to the caller on the prior page).
// Reverse scans seek to the cursor itself (Badger's reverse iterator
// returns keys <= seek); forward scans append a sentinel byte to land
// strictly after it.
func nextSeekKey(cursor string, dir Direction) []byte {
	if dir == Desc {
		return []byte(cursor)
	}
	return append([]byte(cursor), 0x00)
}

func (b *Badger) Close() error {
	return b.db.Close()
}
