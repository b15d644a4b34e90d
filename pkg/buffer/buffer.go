// Package buffer implements host.Buffer over an in-memory snapshot of an
// editor view.
//
// The IPC server rebuilds a Buffer from every request the editor plugin sends,
// so the engine can run its regex searches and word extraction without calling
// back into the editor. Offsets are rune offsets, matching editor columns.
package buffer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/charmbracelet/log"
)

var wordPattern = regexp.MustCompile(`\w+`)

// Settings is a plain map backed settings store.
type Settings map[string]any

// Get implements host.Settings.
func (s Settings) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Buffer is an editable text snapshot.
type Buffer struct {
	id       int
	text     []rune
	sel      []host.Region
	scope    string
	settings Settings
	edits    []Edit
}

// Edit records a Replace call.
type Edit struct {
	Begin int
	End   int
	Text  string
}

// New creates a buffer with the caret at the end of text.
func New(id int, text string) *Buffer {
	runes := []rune(text)
	return &Buffer{
		id:       id,
		text:     runes,
		sel:      []host.Region{{A: len(runes), B: len(runes)}},
		settings: Settings{},
	}
}

// SetSelection replaces the selection with a single region.
func (b *Buffer) SetSelection(a, bb int) *Buffer {
	b.sel = []host.Region{{A: b.clamp(a), B: b.clamp(bb)}}
	return b
}

// SetScope sets the scope name reported for every point. Snapshots only carry
// the scope under the caret.
func (b *Buffer) SetScope(scope string) *Buffer {
	b.scope = scope
	return b
}

// SetSetting stores a per-view setting.
func (b *Buffer) SetSetting(key string, value any) *Buffer {
	b.settings[key] = value
	return b
}

// Text returns the current contents.
func (b *Buffer) Text() string { return string(b.text) }

// Edits returns the replacements applied so far.
func (b *Buffer) Edits() []Edit { return b.edits }

// ID implements host.Buffer.
func (b *Buffer) ID() int { return b.id }

// Size implements host.Buffer.
func (b *Buffer) Size() int { return len(b.text) }

// Selection implements host.Buffer.
func (b *Buffer) Selection() []host.Region { return b.sel }

// Settings implements host.Buffer.
func (b *Buffer) Settings() host.Settings { return b.settings }

// ScopeName implements host.Buffer.
func (b *Buffer) ScopeName(int) string { return b.scope }

// RowCol implements host.Buffer.
func (b *Buffer) RowCol(point int) (int, int) {
	point = b.clamp(point)
	row, start := 0, 0
	for i := 0; i < point; i++ {
		if b.text[i] == '\n' {
			row++
			start = i + 1
		}
	}
	return row, point - start
}

// TextPoint implements host.Buffer.
func (b *Buffer) TextPoint(row, col int) int {
	start := 0
	for r := 0; r < row; r++ {
		idx := indexRune(b.text[start:], '\n')
		if idx < 0 {
			return len(b.text)
		}
		start += idx + 1
	}
	line := b.Line(start)
	if col > line.Size() {
		col = line.Size()
	}
	return start + col
}

// Line implements host.Buffer.
func (b *Buffer) Line(point int) host.Region {
	point = b.clamp(point)
	begin := point
	for begin > 0 && b.text[begin-1] != '\n' {
		begin--
	}
	end := point
	for end < len(b.text) && b.text[end] != '\n' {
		end++
	}
	return host.Region{A: begin, B: end}
}

// Substr implements host.Buffer.
func (b *Buffer) Substr(r host.Region) string {
	return string(b.text[b.clamp(r.Begin()):b.clamp(r.End())])
}

// ExtractCompletions returns the distinct \w tokens that start with prefix and
// are longer than it. Anchored lookups are ordered by distance to location.
func (b *Buffer) ExtractCompletions(prefix string, location int) []string {
	text := string(b.text)
	matches := wordPattern.FindAllStringIndex(text, -1)

	type candidate struct {
		word string
		dist int
	}
	seen := make(map[string]int)
	var found []candidate
	for _, m := range matches {
		word := text[m[0]:m[1]]
		if word == prefix || !strings.HasPrefix(word, prefix) {
			continue
		}
		start := utf8.RuneCountInString(text[:m[0]])
		end := start + utf8.RuneCountInString(word)
		// skip the word being typed
		if location >= 0 && start <= location && location <= end {
			continue
		}
		dist := 0
		if location >= 0 {
			dist = distance(start, end, location)
		}
		if i, ok := seen[word]; ok {
			if dist < found[i].dist {
				found[i].dist = dist
			}
			continue
		}
		seen[word] = len(found)
		found = append(found, candidate{word: word, dist: dist})
	}

	if location >= 0 {
		sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })
	}
	words := make([]string, len(found))
	for i, c := range found {
		words[i] = c.word
	}
	return words
}

// Find implements host.Buffer.
func (b *Buffer) Find(pattern string, start int) (host.Region, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Debugf("invalid pattern %q: %v", pattern, err)
		return host.Region{A: -1, B: -1}, false
	}
	start = b.clamp(start)
	text := string(b.text[start:])
	loc := re.FindStringIndex(text)
	if loc == nil {
		return host.Region{A: -1, B: -1}, false
	}
	begin := start + utf8.RuneCountInString(text[:loc[0]])
	return host.Region{A: begin, B: begin + utf8.RuneCountInString(text[loc[0]:loc[1]])}, true
}

// FindAll implements host.Buffer.
func (b *Buffer) FindAll(pattern string, start int, format string) []string {
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Debugf("invalid pattern %q: %v", pattern, err)
		return nil
	}
	text := string(b.text[b.clamp(start):])
	var out []string
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, string(re.ExpandString(nil, format, text, m)))
	}
	return out
}

// Replace implements host.Buffer. The caret moves to the end of text.
func (b *Buffer) Replace(r host.Region, text string) {
	begin, end := b.clamp(r.Begin()), b.clamp(r.End())
	repl := []rune(text)
	next := make([]rune, 0, len(b.text)-(end-begin)+len(repl))
	next = append(next, b.text[:begin]...)
	next = append(next, repl...)
	next = append(next, b.text[end:]...)
	b.text = next
	b.edits = append(b.edits, Edit{Begin: begin, End: end, Text: text})

	caret := begin + len(repl)
	b.sel = []host.Region{{A: caret, B: caret}}
}

func (b *Buffer) clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p > len(b.text) {
		return len(b.text)
	}
	return p
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}

func distance(start, end, location int) int {
	if location < start {
		return start - location
	}
	return location - end
}

// Window is a fixed list of buffers and project folders.
type Window struct {
	views   []host.Buffer
	folders []string
}

// NewWindow builds a window.
func NewWindow(folders []string, views ...host.Buffer) *Window {
	return &Window{views: views, folders: folders}
}

// Views implements host.Window.
func (w *Window) Views() []host.Buffer { return w.views }

// Folders implements host.Window.
func (w *Window) Folders() []string { return w.folders }
