// Package cli handles cmd line input for debugging translation key lookups
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/ri18n/pkg/keys"
	"github.com/charmbracelet/log"
)

// InputHandler reads partial keys from a reader and prints the keys of a
// locale directory that start with them.
type InputHandler struct {
	cache  *keys.Cache
	dir    string
	limit  int
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// NewInputHandler creates a handler over the keys of dir. A limit of 0 prints
// every match.
func NewInputHandler(cache *keys.Cache, dir string, limit int, in io.Reader, out io.Writer, logger *log.Logger) *InputHandler {
	return &InputHandler{
		cache:  cache,
		dir:    dir,
		limit:  limit,
		in:     in,
		out:    out,
		logger: logger,
	}
}

// Start loads the keys and loops over input lines until EOF.
// An empty line prints every key; ":reload" reloads the directory.
func (h *InputHandler) Start(ctx context.Context) error {
	if err := h.reload(ctx); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "ri18n CLI: %d keys from %s\n", h.cache.Len(), h.dir)
	fmt.Fprintln(h.out, "type the start of a key and press Enter (Ctrl+D to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == ":reload" {
			if err := h.reload(ctx); err != nil {
				h.logger.Error("reload failed", "err", err)
			}
			fmt.Fprintf(h.out, "%d keys\n", h.cache.Len())
			continue
		}
		h.handleInput(input)
	}
}

func (h *InputHandler) reload(ctx context.Context) error {
	start := time.Now()
	if err := h.cache.Reload(ctx, h.dir); err != nil {
		return err
	}
	h.logger.Debugf("Took [ %v ] to load %d keys", time.Since(start), h.cache.Len())
	return nil
}

func (h *InputHandler) handleInput(prefix string) {
	matches := h.cache.Match(prefix)
	if len(matches) == 0 {
		fmt.Fprintf(h.out, "no keys start with '%s'\n", prefix)
		return
	}

	shown := matches
	if h.limit > 0 && len(shown) > h.limit {
		shown = shown[:h.limit]
	}
	for i, k := range shown {
		fmt.Fprintf(h.out, "%3d. %s\n", i+1, k)
	}
	if len(shown) < len(matches) {
		fmt.Fprintf(h.out, "... %d more\n", len(matches)-len(shown))
	}
}
