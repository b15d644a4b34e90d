// Package words scrapes completion candidates from open buffers.
//
// The host's word extraction is cheap but imprecise: it can drop the last
// character of a word in some encodings. Extract therefore bounds how much it
// reads (views, words per view, word size) and repairs truncated words within
// a small time budget per view.
package words

import (
	"regexp"
	"time"

	"github.com/bastiangx/ri18n/internal/utils"
	"github.com/bastiangx/ri18n/pkg/config"
	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/charmbracelet/log"
)

// Default limits.
const (
	MinWordSize       = 3
	MaxWordSize       = 50
	MaxViews          = 20
	MaxWordsPerView   = 100
	MaxFixTimePerView = 10 * time.Millisecond
)

// Limits bounds extraction.
type Limits struct {
	MinWordSize     int
	MaxWordSize     int
	MaxViews        int
	MaxWordsPerView int
	MaxFixTime      time.Duration
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{
		MinWordSize:     MinWordSize,
		MaxWordSize:     MaxWordSize,
		MaxViews:        MaxViews,
		MaxWordsPerView: MaxWordsPerView,
		MaxFixTime:      MaxFixTimePerView,
	}
}

// LimitsFromConfig converts the [words] config section.
func LimitsFromConfig(cfg config.WordsConfig) Limits {
	return Limits{
		MinWordSize:     cfg.MinSize,
		MaxWordSize:     cfg.MaxSize,
		MaxViews:        cfg.MaxViews,
		MaxWordsPerView: cfg.MaxPerView,
		MaxFixTime:      cfg.MaxFixTime(),
	}
}

// Extractor collects words from the views of a window.
type Extractor struct {
	limits Limits
	now    func() time.Time
	logger *log.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(limits Limits, logger *log.Logger) *Extractor {
	return &Extractor{limits: limits, now: time.Now, logger: logger}
}

// WithClock replaces the clock used for the repair budget.
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// Views orders the views to consult: active first, then the others, at most
// MaxViews of them.
func (e *Extractor) Views(active host.Buffer, window host.Window) []host.Buffer {
	views := []host.Buffer{active}
	if window != nil {
		for _, v := range window.Views() {
			if v.ID() != active.ID() {
				views = append(views, v)
			}
		}
	}
	if e.limits.MaxViews > 0 && len(views) > e.limits.MaxViews {
		views = views[:e.limits.MaxViews]
	}
	return views
}

// Extract returns the words starting with prefix from the active view and
// the other views of window. Words near locations[0] in the active view come
// first.
func (e *Extractor) Extract(active host.Buffer, window host.Window, prefix string, locations []int) []string {
	var words []string
	for _, v := range e.Views(active, window) {
		var viewWords []string
		if len(locations) > 0 && v.ID() == active.ID() {
			viewWords = v.ExtractCompletions(prefix, locations[0])
		} else {
			viewWords = v.ExtractCompletions(prefix, -1)
		}
		viewWords = FilterWords(viewWords, e.limits)
		viewWords = e.FixTruncation(v, viewWords)
		words = append(words, viewWords...)
	}
	return WithoutDuplicates(words)
}

// FilterWords keeps at most MaxWordsPerView words and drops the ones outside
// the size bounds.
func FilterWords(words []string, limits Limits) []string {
	if limits.MaxWordsPerView > 0 && len(words) > limits.MaxWordsPerView {
		words = words[:limits.MaxWordsPerView]
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utils.WithinSize(w, limits.MinWordSize, limits.MaxWordSize) {
			out = append(out, w)
		}
	}
	return out
}

// WithoutDuplicates keeps the first instance of every word in order.
func WithoutDuplicates(words []string) []string {
	return utils.WithoutDuplicates(words)
}

// FixTruncation repairs words the host returned without their last
// character. A word is truncated iff it cannot be found between two word
// boundaries; it is then replaced by every match of the word extended by one
// word character. Words that end in a non-word character (foo?, bar!) never
// match either pattern and are kept as they are.
//
// Once MaxFixTime has elapsed the remaining words pass through untouched.
func (e *Extractor) FixTruncation(view host.Buffer, words []string) []string {
	fixed := make([]string, 0, len(words))
	start := e.now()

	for i, w := range words {
		quoted := regexp.QuoteMeta(w)
		if _, found := view.Find(`\b`+quoted+`\b`, 0); found {
			fixed = append(fixed, w)
		} else if extended := view.FindAll(`\b`+quoted+`\w\b`, 0, "$0"); len(extended) > 0 {
			fixed = append(fixed, extended...)
		} else {
			fixed = append(fixed, w)
		}

		if e.limits.MaxFixTime > 0 && e.now().Sub(start) > e.limits.MaxFixTime {
			e.logger.Debug("truncation repair budget exhausted", "view", view.ID(), "fixed", i+1, "total", len(words))
			return append(fixed, words[i+1:]...)
		}
	}
	return fixed
}
