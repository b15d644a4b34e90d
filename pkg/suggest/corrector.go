package suggest

import (
	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/charmbracelet/log"
)

// Edit describes a replacement applied to a buffer, in buffer offsets.
type Edit struct {
	Begin int
	End   int
	Text  string
}

// Corrector rewrites the quoted string under the caret after the host
// inserted a completion. Hosts only swap the word before the caret for the
// completion, so a dotted key lands next to what was typed before it
// ("errors.errors.blank"). The text from the anchor column to the closing
// quote is the completion; it becomes the whole content of the literal.
type Corrector struct {
	logger *log.Logger
}

// NewCorrector creates a corrector.
func NewCorrector(logger *log.Logger) *Corrector {
	return &Corrector{logger: logger}
}

// Apply replaces the quoted content around the caret with the text starting
// at col. It is a no-op, returning false, when the literal is not closed or
// col does not leave at least one character before the closing quote.
func (c *Corrector) Apply(view host.Buffer, col int) (Edit, bool) {
	region, lineBegin := QuotedRegionAt(view)
	if !region.Closed() {
		c.logger.Debug("no closed quoted string at caret", "view", view.ID())
		return Edit{}, false
	}
	if col <= region.Start || col >= region.End {
		c.logger.Debug("anchor outside quoted string", "view", view.ID(), "col", col, "start", region.Start, "end", region.End)
		return Edit{}, false
	}

	inserted := string(region.line[col:region.End])
	edit := Edit{
		Begin: lineBegin + region.Start + 1,
		End:   lineBegin + region.End,
		Text:  inserted,
	}
	view.Replace(host.Region{A: edit.Begin, B: edit.End}, edit.Text)
	c.logger.Debug("replaced quoted string", "view", view.ID(), "text", inserted)
	return edit, true
}
