// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package kvstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Etcd implements KV on top of an etcd v3 cluster, the second deployment
// substrate named in spec.md §1. Keys are namespaced under a configured
// prefix so multiple services may share a cluster.
type Etcd struct {
	client  *clientv3.Client
	prefix  string
	timeout time.Duration
}

// OpenEtcd dials an etcd cluster at the given endpoints.
func OpenEtcd(endpoints []string, prefix string, timeout time.Duration) (*Etcd, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("kvstore: dial etcd: %w", err)
	}
	return &Etcd{client: cli, prefix: prefix, timeout: timeout}, nil
}

func (e *Etcd) fullKey(key string) string {
	return e.prefix + key
}

func (e *Etcd) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, e.timeout)
}

func (e *Etcd) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := e.ctx(ctx)
	defer cancel()

	resp, err := e.client.Get(ctx, e.fullKey(key))
	if err != nil {
		return nil, fmt.Errorf("kvstore: etcd get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrNotFound
	}
	return resp.Kvs[0].Value, nil
}

func (e *Etcd) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := e.ctx(ctx)
	defer cancel()

	_, err := e.client.Put(ctx, e.fullKey(key), string(value))
	if err != nil {
		return fmt.Errorf("kvstore: etcd put %s: %w", key, err)
	}
	return nil
}

func (e *Etcd) Delete(ctx context.Context, key string) error {
	ctx, cancel := e.ctx(ctx)
	defer cancel()

	_, err := e.client.Delete(ctx, e.fullKey(key))
	if err != nil {
		return fmt.Errorf("kvstore: etcd delete %s: %w", key, err)
	}
	return nil
}

func (e *Etcd) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	ctx, cancel := e.ctx(ctx)
	defer cancel()

	fullPrefix := e.fullKey(opts.Prefix)
	resp, err := e.client.Get(ctx, fullPrefix, clientv3.WithPrefix())
	if err != nil {
		return ListResult{}, fmt.Errorf("kvstore: etcd list %s: %w", opts.Prefix, err)
	}

	entries := make([]Entry, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		entries = append(entries, Entry{
			Key:   string(kv.Key)[len(e.prefix):],
			Value: kv.Value,
		})
	}

	if opts.Direction == Desc {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key > entries[j].Key })
	} else {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	}

	start := 0
	if opts.Cursor != "" {
		for i, en := range entries {
			if en.Key == opts.Cursor {
				start = i + 1
				break
			}
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = len(entries) - start
	}

	result := ListResult{Complete: true}
	end := start + limit
	if end >= len(entries) {
		end = len(entries)
	} else {
		result.Complete = false
	}
	if start <= end {
		result.Entries = entries[start:end]
	}
	if !result.Complete && len(result.Entries) > 0 {
		result.Cursor = result.Entries[len(result.Entries)-1].Key
	}

	return result, nil
}

func (e *Etcd) Close() error {
	return e.client.Close()
}
