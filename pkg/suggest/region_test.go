package suggest

import (
	"testing"

	"github.com/bastiangx/ri18n/pkg/buffer"
	"github.com/stretchr/testify/assert"
)

func TestFindQuotedRegion(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		col     int
		start   int
		end     int
		partial string
		content string
	}{
		{"double quotes", `t("abc")`, 4, 2, 6, "a", "abc"},
		{"single quotes ignore double", `t('a"b')`, 4, 2, 6, "a", `a"b`},
		{"caret at closing quote", `t("abc")`, 6, 2, 6, "abc", "abc"},
		{"not closed", `t("ab`, 5, 2, -1, "ab", ""},
		{"no quote before caret", `foo`, 2, -1, -1, "", ""},
		{"column past the line", `t("ab`, 40, 2, -1, "ab", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FindQuotedRegion(tt.line, tt.col)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, tt.partial, r.Partial())
			assert.Equal(t, tt.content, r.Content())
		})
	}
}

func TestQuotedRegionAt(t *testing.T) {
	view := buffer.New(1, "# header\nt(\"foo\")").SetSelection(14, 14)

	r, lineBegin := QuotedRegionAt(view)
	assert.Equal(t, 9, lineBegin)
	assert.Equal(t, 2, r.Start)
	assert.Equal(t, 6, r.End)
	assert.Equal(t, "fo", r.Partial())
	assert.True(t, r.Closed())
}
