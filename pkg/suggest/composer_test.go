package suggest

import (
	"context"
	"testing"

	"github.com/bastiangx/ri18n/internal/logger"
	"github.com/bastiangx/ri18n/pkg/buffer"
	"github.com/bastiangx/ri18n/pkg/config"
	"github.com/bastiangx/ri18n/pkg/keys"
	"github.com/bastiangx/ri18n/pkg/scope"
	"github.com/bastiangx/ri18n/pkg/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rubyString = "source.ruby string.quoted.double.ruby"

func newComposer(t *testing.T, opts config.CompletionConfig, keyList ...string) *Composer {
	t.Helper()
	cfg := config.DefaultConfig()
	log := logger.Discard()

	cache := keys.NewCache(keys.FlattenerFunc(func(context.Context, string) ([]string, error) {
		return keyList, nil
	}), log)
	if len(keyList) > 0 {
		require.NoError(t, cache.Reload(context.Background(), "config/locales"))
	}
	return NewComposer(scope.NewGate(cfg, log), words.NewExtractor(words.DefaultLimits(), log), cache, opts, log)
}

func displays(items []Completion) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Display
	}
	return out
}

func TestComposerMergesWordsAndKeys(t *testing.T) {
	c := newComposer(t, config.DefaultConfig().Completion, "errors.blank", "errors.taken", "messages.hello")
	view := buffer.New(1, `I18n.t("err")`).SetSelection(11, 11).SetScope(rubyString)
	other := buffer.New(2, "errand errata")

	got := c.Complete(view, buffer.NewWindow(nil, view, other), "err", []int{11})
	assert.Equal(t, []string{"errand", "errata", "errors.blank", "errors.taken"}, displays(got))

	anchor, ok := c.Anchor()
	assert.True(t, ok)
	assert.Equal(t, 8, anchor)
	assert.Equal(t, StateAwaitingCommit, c.State())
}

func TestComposerOutsideQuotesReturnsWords(t *testing.T) {
	c := newComposer(t, config.DefaultConfig().Completion, "errand.key")
	view := buffer.New(1, "errand err").SetScope(rubyString)

	got := c.Complete(view, nil, "err", []int{view.Size()})
	assert.Equal(t, []string{"errand"}, displays(got))
}

func TestComposerGateRejects(t *testing.T) {
	c := newComposer(t, config.DefaultConfig().Completion, "errors.blank")
	view := buffer.New(1, `t("err")`).SetSelection(6, 6).SetScope("source.ruby comment.line")

	assert.Empty(t, c.Complete(view, nil, "err", []int{6}))
	assert.Equal(t, StateIdle, c.State())
}

func TestComposerUnansweredQueryDropsAnchor(t *testing.T) {
	c := newComposer(t, config.DefaultConfig().Completion, "errors.blank")
	inside := buffer.New(1, `t("errors.bl")`).SetSelection(12, 12).SetScope(rubyString)
	comment := buffer.New(1, "# errors.bl").SetScope("source.ruby comment.line")

	c.Complete(inside, nil, "bl", []int{12})
	require.Equal(t, StateAwaitingCommit, c.State())

	assert.Empty(t, c.Complete(comment, nil, "bl", []int{11}))
	_, ok := c.Anchor()
	assert.False(t, ok, "a rejected query leaves no anchor behind")
	assert.Equal(t, StateIdle, c.State())
}

func TestComposerSkippedQueryDropsAnchor(t *testing.T) {
	c := newComposer(t, config.CompletionConfig{FallbackToWords: false})
	view := buffer.New(1, `t("errors.bl")`).SetSelection(12, 12).SetScope(rubyString)

	c.state, c.anchor = StateAwaitingCommit, 10
	assert.Empty(t, c.Complete(view, nil, "bl", []int{12}))
	_, ok := c.Anchor()
	assert.False(t, ok)
}

func TestComposerWithoutKeys(t *testing.T) {
	view := buffer.New(1, `errand t("err")`).SetSelection(13, 13).SetScope(rubyString)

	c := newComposer(t, config.DefaultConfig().Completion)
	assert.Equal(t, []string{"errand"}, displays(c.Complete(view, nil, "err", []int{13})))

	c = newComposer(t, config.CompletionConfig{FallbackToWords: false, EscapeDollar: true})
	assert.Empty(t, c.Complete(view, nil, "err", []int{13}))
	assert.Equal(t, StateIdle, c.State())
}

func TestComposerEscapesDollar(t *testing.T) {
	view := buffer.New(1, `t("pri")`).SetSelection(6, 6).SetScope(rubyString)

	c := newComposer(t, config.DefaultConfig().Completion, "prices.$usd")
	got := c.Complete(view, nil, "pri", []int{6})
	require.Len(t, got, 1)
	assert.Equal(t, "prices.$usd", got[0].Display)
	assert.Equal(t, `prices.\$usd`, got[0].Insert)

	c = newComposer(t, config.CompletionConfig{FallbackToWords: true}, "prices.$usd")
	got = c.Complete(view, nil, "pri", []int{6})
	require.Len(t, got, 1)
	assert.Equal(t, "prices.$usd", got[0].Insert)
}

func TestComposerStateMachine(t *testing.T) {
	c := newComposer(t, config.DefaultConfig().Completion, "errors.blank")
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "idle", c.State().String())

	_, ok := c.TakeAnchor()
	assert.False(t, ok, "no anchor before a query")

	view := buffer.New(1, `t("errors.bl")`).SetSelection(12, 12).SetScope(rubyString)
	c.Complete(view, nil, "bl", []int{12})
	assert.Equal(t, "awaiting_commit", c.State().String())

	anchor, ok := c.TakeAnchor()
	assert.True(t, ok)
	assert.Equal(t, 10, anchor)
	assert.Equal(t, StateIdle, c.State())

	c.Complete(view, nil, "bl", []int{12})
	c.Reset()
	_, ok = c.Anchor()
	assert.False(t, ok)
}
