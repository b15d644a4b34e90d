// Package host describes the editor capabilities the completion engine relies on.
//
// The engine never talks to an editor directly. A plugin (or the IPC server in
// pkg/server) hands it values implementing these interfaces, and every
// operation the engine performs on a buffer goes through them.
package host

// Region is a character span in a buffer. A and B may be given in either
// order, the way editor selections are.
type Region struct {
	A int
	B int
}

// Begin returns the smaller end of the region.
func (r Region) Begin() int {
	if r.A < r.B {
		return r.A
	}
	return r.B
}

// End returns the larger end of the region.
func (r Region) End() int {
	if r.A > r.B {
		return r.A
	}
	return r.B
}

// Size returns the number of characters covered.
func (r Region) Size() int { return r.End() - r.Begin() }

// Empty reports whether the region is a caret.
func (r Region) Empty() bool { return r.A == r.B }

// Settings is a key/value settings store attached to a buffer.
type Settings interface {
	Get(key string) (any, bool)
}

// Buffer is an open text buffer (an editor view).
type Buffer interface {
	// ID is stable for the lifetime of the buffer.
	ID() int
	Size() int
	Selection() []Region

	// RowCol maps a character offset to a zero based row and column.
	RowCol(point int) (row, col int)
	// TextPoint maps a row and column back to a character offset.
	TextPoint(row, col int) int
	// Line returns the region of the line containing point, without the newline.
	Line(point int) Region
	Substr(r Region) string

	// ScopeName returns the space separated lexical scopes at point.
	ScopeName(point int) string

	// ExtractCompletions returns word tokens starting with prefix. When
	// location is not negative the words closest to it come first.
	ExtractCompletions(prefix string, location int) []string

	// Find returns the first match of pattern at or after start.
	Find(pattern string, start int) (Region, bool)
	// FindAll returns every match of pattern at or after start expanded
	// through format ("$0" for the whole match).
	FindAll(pattern string, start int, format string) []string

	Replace(r Region, text string)
	Settings() Settings
}

// Window groups the buffers open in the editor together with the project
// folders.
type Window interface {
	Views() []Buffer
	Folders() []string
}
