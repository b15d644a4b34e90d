package buffer

import (
	"testing"

	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/stretchr/testify/assert"
)

func TestRowColRoundTrip(t *testing.T) {
	b := New(1, "ab\ncd\n\nef")

	row, col := b.RowCol(4)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
	assert.Equal(t, 4, b.TextPoint(1, 1))

	row, col = b.RowCol(7)
	assert.Equal(t, 3, row)
	assert.Equal(t, 0, col)
	assert.Equal(t, 7, b.TextPoint(3, 0))

	assert.Equal(t, 5, b.TextPoint(1, 99), "column is clamped to the line")
}

func TestLine(t *testing.T) {
	b := New(1, "first\nsecond\nthird")
	line := b.Line(8)
	assert.Equal(t, host.Region{A: 6, B: 12}, line)
	assert.Equal(t, "second", b.Substr(line))
	assert.Equal(t, "third", b.Substr(b.Line(b.Size())))
}

func TestExtractCompletions(t *testing.T) {
	b := New(1, "alpha beta\nalpine\nalps")

	assert.Equal(t, []string{"alpha", "alpine", "alps"}, b.ExtractCompletions("al", -1))
	assert.Equal(t, []string{"alpine", "alpha"}, b.ExtractCompletions("al", b.Size()),
		"anchored lookups skip the word under the caret and sort by distance")
	assert.Empty(t, b.ExtractCompletions("zz", -1))
}

func TestExtractCompletionsSkipsPrefixItself(t *testing.T) {
	b := New(1, "err errand err")
	assert.Equal(t, []string{"errand"}, b.ExtractCompletions("err", -1))
}

func TestFind(t *testing.T) {
	b := New(1, "alpha beta")

	r, ok := b.Find(`\bbeta\b`, 0)
	assert.True(t, ok)
	assert.Equal(t, host.Region{A: 6, B: 10}, r)

	_, ok = b.Find(`\bbet\b`, 0)
	assert.False(t, ok)

	_, ok = b.Find(`(`, 0)
	assert.False(t, ok, "invalid patterns never match")
}

func TestFindAll(t *testing.T) {
	b := New(1, "cats cath cat")
	assert.Equal(t, []string{"cats", "cath"}, b.FindAll(`\bcat\w\b`, 0, "$0"))
	assert.Nil(t, b.FindAll(`\bdog\b`, 0, "$0"))
}

func TestReplace(t *testing.T) {
	b := New(1, "hello world")
	b.Replace(host.Region{A: 11, B: 6}, "there")

	assert.Equal(t, "hello there", b.Text())
	assert.Equal(t, []Edit{{Begin: 6, End: 11, Text: "there"}}, b.Edits())
	assert.Equal(t, []host.Region{{A: 11, B: 11}}, b.Selection())
}

func TestRuneOffsets(t *testing.T) {
	b := New(1, `t("größe")`)
	r, ok := b.Find(`größe`, 0)
	assert.True(t, ok)
	assert.Equal(t, host.Region{A: 3, B: 8}, r)
	assert.Equal(t, "größe", b.Substr(r))
}

func TestSettingsAndScope(t *testing.T) {
	b := New(7, "x").SetScope("source.ruby").SetSetting("k", "v")
	assert.Equal(t, 7, b.ID())
	assert.Equal(t, "source.ruby", b.ScopeName(0))
	v, ok := b.Settings().Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	w := NewWindow([]string{"/app"}, b)
	assert.Equal(t, []string{"/app"}, w.Folders())
	assert.Len(t, w.Views(), 1)
}
