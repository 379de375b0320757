// Package cache stores computed routes in BadgerDB.
//
// Keys combine the graph fingerprint with the query, so a cache survives
// restarts only while the graph it was filled from is unchanged. An empty
// directory opens Badger in memory.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	navigator "github.com/UtkershBasnet/CityNavigator"
)

// Config holds configuration for a RouteCache.
type Config struct {
	// Dir is the directory for Badger files. Empty means in-memory.
	Dir string

	// TTL bounds how long an entry lives. Zero keeps entries forever.
	TTL time.Duration

	// Logger receives Badger's internal messages. Nil disables them.
	Logger *slog.Logger
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

const keyPrefix = "route/"

// RouteCache is a Badger-backed store of SearchResults.
// It is safe for concurrent use.
type RouteCache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open creates or opens a RouteCache.
func Open(cfg Config) (*RouteCache, error) {
	var opts badger.Options
	if cfg.Dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &RouteCache{db: db, ttl: cfg.TTL}, nil
}

// Key identifies a query against a specific graph. Every part is quoted, so
// ids containing the separator cannot collide.
func Key(fingerprint string, algo navigator.Algorithm, startID, endID string) []byte {
	key := []byte(keyPrefix)
	for i, part := range []string{fingerprint, string(algo), startID, endID} {
		if i > 0 {
			key = append(key, '/')
		}
		key = strconv.AppendQuote(key, part)
	}
	return key
}

// Get returns the cached result for key. The bool is false on a miss.
func (c *RouteCache) Get(key []byte) (navigator.SearchResult, bool, error) {
	var res navigator.SearchResult
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &res)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return navigator.SearchResult{}, false, nil
	}
	if err != nil {
		return navigator.SearchResult{}, false, fmt.Errorf("read cached route: %w", err)
	}
	return res, true, nil
}

// Put stores res under key.
func (c *RouteCache) Put(key []byte, res navigator.SearchResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode route: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("write cached route: %w", err)
	}
	return nil
}

// Purge removes every cached route.
func (c *RouteCache) Purge() error {
	return c.db.DropPrefix([]byte(keyPrefix))
}

// Len counts live entries.
func (c *RouteCache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Close releases the underlying database.
func (c *RouteCache) Close() error {
	return c.db.Close()
}
