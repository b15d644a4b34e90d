// Package suggest composes translation-key completions and repairs the text
// the host inserts once one is committed.
package suggest

import (
	"unicode/utf8"

	"github.com/bastiangx/ri18n/internal/utils"
	"github.com/bastiangx/ri18n/pkg/config"
	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/bastiangx/ri18n/pkg/keys"
	"github.com/bastiangx/ri18n/pkg/scope"
	"github.com/bastiangx/ri18n/pkg/words"
	"github.com/charmbracelet/log"
)

// State is the composer's position in the query/commit exchange.
type State int

const (
	// StateIdle means no completion is pending.
	StateIdle State = iota
	// StateAwaitingCommit means a query stored an anchor for the next commit.
	StateAwaitingCommit
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingCommit:
		return "awaiting_commit"
	default:
		return "unknown"
	}
}

// Completion is a candidate as handed to the host.
type Completion struct {
	Display string
	Insert  string
}

// Composer merges buffer words with translation keys for one buffer.
type Composer struct {
	gate      *scope.Gate
	extractor *words.Extractor
	cache     *keys.Cache
	opts      config.CompletionConfig
	logger    *log.Logger

	state  State
	anchor int
}

// NewComposer creates an idle composer.
func NewComposer(gate *scope.Gate, extractor *words.Extractor, cache *keys.Cache, opts config.CompletionConfig, logger *log.Logger) *Composer {
	return &Composer{
		gate:      gate,
		extractor: extractor,
		cache:     cache,
		opts:      opts,
		logger:    logger,
	}
}

// Complete answers a completion query. Buffer words come first, then the keys
// matching the part of the quoted string typed so far. A successful query
// stores the anchor column where prefix starts. Every query drops the anchor
// of the previous one, answered or not.
func (c *Composer) Complete(view host.Buffer, window host.Window, prefix string, locations []int) []Completion {
	c.Reset()
	if !c.gate.Allow(view) {
		return []Completion{}
	}
	if c.cache.Len() == 0 && !c.opts.FallbackToWords {
		c.logger.Debug("no keys loaded, skipping", "view", view.ID())
		return []Completion{}
	}

	region, _ := QuotedRegionAt(view)
	candidates := c.extractor.Extract(view, window, prefix, locations)

	if c.cache.Len() > 0 && region.Opened() {
		matches := c.cache.Match(region.Partial())
		c.logger.Debug("key matches", "partial", region.Partial(), "count", len(matches))
		candidates = append(candidates, matches...)
	}
	candidates = utils.WithoutDuplicates(candidates)

	c.anchor = region.Cursor - utf8.RuneCountInString(prefix)
	c.state = StateAwaitingCommit

	out := make([]Completion, len(candidates))
	for i, w := range candidates {
		insert := w
		if c.opts.EscapeDollar {
			insert = utils.EscapeDollar(w)
		}
		out[i] = Completion{Display: w, Insert: insert}
	}
	return out
}

// State returns the current state.
func (c *Composer) State() State { return c.state }

// Anchor returns the pending anchor column, if any.
func (c *Composer) Anchor() (int, bool) {
	return c.anchor, c.state == StateAwaitingCommit
}

// TakeAnchor returns the pending anchor and goes back to idle.
func (c *Composer) TakeAnchor() (int, bool) {
	col, ok := c.Anchor()
	c.Reset()
	return col, ok
}

// Reset drops any pending anchor.
func (c *Composer) Reset() {
	c.state = StateIdle
	c.anchor = 0
}
