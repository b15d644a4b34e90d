// Package keys loads translation keys from a locale directory and answers
// prefix queries over them.
package keys

import (
	"context"
	"sort"
	"time"

	"github.com/bastiangx/ri18n/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Cache holds the flattened key set of one locale directory. Keys keep the
// order the flattener produced them in; the trie maps each key to its
// position so prefix lookups can restore that order.
type Cache struct {
	flattener Flattener
	logger    *log.Logger

	keys     []string
	trie     *patricia.Trie
	dir      string
	loadedAt time.Time
	err      error
}

// NewCache creates an empty cache backed by flattener.
func NewCache(flattener Flattener, logger *log.Logger) *Cache {
	return &Cache{
		flattener: flattener,
		logger:    logger,
		trie:      patricia.NewTrie(),
	}
}

// Reload replaces the key set with a fresh flattening of dir. On failure the
// previous keys are kept and a *LoadError is returned.
func (c *Cache) Reload(ctx context.Context, dir string) error {
	start := time.Now()

	if dir == "" {
		c.err = &LoadError{Err: ErrNoLocaleDir}
		return c.err
	}

	keys, err := c.flattener.Flatten(ctx, dir)
	if err != nil {
		c.err = &LoadError{Dir: dir, Err: err}
		return c.err
	}

	filter := utils.NewSeenFilter()
	trie := patricia.NewTrie()
	unique := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || !filter.ShouldInclude(k) {
			continue
		}
		trie.Insert(patricia.Prefix(k), len(unique))
		unique = append(unique, k)
	}

	c.keys = unique
	c.trie = trie
	c.dir = dir
	c.loadedAt = time.Now()
	c.err = nil

	c.logger.Debugf("Loaded %d keys from %s in %v", len(unique), dir, time.Since(start))
	return nil
}

// Keys returns a copy of the key set.
func (c *Cache) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Match returns the keys starting with prefix, in key set order. An empty
// prefix returns every key.
func (c *Cache) Match(prefix string) []string {
	if prefix == "" {
		return c.Keys()
	}

	var positions []int
	err := c.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		positions = append(positions, item.(int))
		return nil
	})
	if err != nil {
		c.logger.Errorf("Error visiting key trie: %v", err)
		return []string{}
	}

	sort.Ints(positions)
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = c.keys[p]
	}
	return out
}

// Len returns the number of keys.
func (c *Cache) Len() int { return len(c.keys) }

// Dir returns the directory of the last successful reload.
func (c *Cache) Dir() string { return c.dir }

// LoadedAt returns the time of the last successful reload.
func (c *Cache) LoadedAt() time.Time { return c.loadedAt }

// Err returns the error of the last reload, nil if it succeeded.
func (c *Cache) Err() error { return c.err }
