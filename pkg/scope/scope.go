// Package scope decides whether key completion applies at the caret.
package scope

import (
	"strings"

	"github.com/bastiangx/ri18n/pkg/config"
	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/charmbracelet/log"
)

// IsActive reports whether any non-empty entry of validScopes occurs in
// scopeName. An empty list never matches.
func IsActive(scopeName string, validScopes []string) bool {
	for _, s := range validScopes {
		if s != "" && strings.Contains(scopeName, s) {
			return true
		}
	}
	return false
}

// Gate checks a view against the configured scopes.
type Gate struct {
	cfg    *config.Config
	logger *log.Logger
}

// NewGate creates a gate reading the global scope list from cfg.
func NewGate(cfg *config.Config, logger *log.Logger) *Gate {
	return &Gate{cfg: cfg, logger: logger}
}

// Allow reports whether completion should run for view. A range selection
// disables it.
func (g *Gate) Allow(view host.Buffer) bool {
	sel := view.Selection()
	if len(sel) == 0 || !sel[0].Empty() {
		return false
	}

	valid := g.cfg.ValidScopes(view.Settings())
	name := view.ScopeName(sel[0].B)
	if !IsActive(name, valid) {
		g.logger.Debug("scope rejected", "view", view.ID(), "scope", name)
		return false
	}
	return true
}
