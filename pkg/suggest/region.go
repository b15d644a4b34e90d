package suggest

import "github.com/bastiangx/ri18n/pkg/host"

// QuotedRegion locates the quoted literal around a cursor on one line. All
// values are line relative columns. Start is the opening quote, End the
// closing quote or -1 when the literal is not closed yet.
type QuotedRegion struct {
	Start  int
	End    int
	Cursor int
	line   []rune
}

// FindQuotedRegion scans line for the quote opening before col and the
// matching quote at or after it. Start is -1 when col is not preceded by a
// quote.
func FindQuotedRegion(line string, col int) QuotedRegion {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	if col < 0 {
		col = 0
	}
	r := QuotedRegion{Start: -1, End: -1, Cursor: col, line: runes}

	for i := col - 1; i >= 0; i-- {
		if isQuote(runes[i]) {
			r.Start = i
			break
		}
	}
	if r.Start < 0 {
		return r
	}
	for i := col; i < len(runes); i++ {
		if runes[i] == runes[r.Start] {
			r.End = i
			break
		}
	}
	return r
}

// QuotedRegionAt computes the region around the first caret of view, with
// the caret's line offset.
func QuotedRegionAt(view host.Buffer) (QuotedRegion, int) {
	sel := view.Selection()
	if len(sel) == 0 {
		return QuotedRegion{Start: -1, End: -1}, 0
	}
	caret := sel[0].B
	line := view.Line(caret)
	_, col := view.RowCol(caret)
	return FindQuotedRegion(view.Substr(line), col), line.Begin()
}

// Opened reports whether the cursor follows an opening quote.
func (r QuotedRegion) Opened() bool { return r.Start >= 0 }

// Closed reports whether a non-inverted content span exists.
func (r QuotedRegion) Closed() bool { return r.Start >= 0 && r.End > r.Start }

// Partial returns the text typed between the opening quote and the cursor.
func (r QuotedRegion) Partial() string {
	if !r.Opened() {
		return ""
	}
	return string(r.line[r.Start+1 : r.Cursor])
}

// Content returns the text between the quotes.
func (r QuotedRegion) Content() string {
	if !r.Closed() {
		return ""
	}
	return string(r.line[r.Start+1 : r.End])
}

func isQuote(c rune) bool { return c == '"' || c == '\'' }
