// Package session keeps one completion session per editor buffer and routes
// host events to it.
//
// A session is created when its buffer is activated (or first queried),
// reloads its key cache on every activation, and is disposed with Close. No
// state is shared between buffers.
package session

import (
	"context"

	"github.com/bastiangx/ri18n/internal/logger"
	"github.com/bastiangx/ri18n/internal/utils"
	"github.com/bastiangx/ri18n/pkg/config"
	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/bastiangx/ri18n/pkg/keys"
	"github.com/bastiangx/ri18n/pkg/scope"
	"github.com/bastiangx/ri18n/pkg/suggest"
	"github.com/bastiangx/ri18n/pkg/words"
	"github.com/charmbracelet/log"
)

// Session is the completion state of one buffer.
type Session struct {
	ID       int
	Cache    *keys.Cache
	Composer *suggest.Composer
}

// Manager owns the sessions, keyed by buffer ID.
type Manager struct {
	cfg       *config.Config
	flattener keys.Flattener
	gate      *scope.Gate
	extractor *words.Extractor
	corrector *suggest.Corrector
	logger    *log.Logger
	sessions  map[int]*Session
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the logger shared by the manager's components.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithExtractor replaces the word extractor.
func WithExtractor(e *words.Extractor) Option {
	return func(m *Manager) { m.extractor = e }
}

// NewManager wires the engine components from cfg.
func NewManager(cfg *config.Config, flattener keys.Flattener, opts ...Option) *Manager {
	m := &Manager{
		cfg:       cfg,
		flattener: flattener,
		logger:    logger.New("session"),
		sessions:  make(map[int]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.gate = scope.NewGate(cfg, m.logger)
	if m.extractor == nil {
		m.extractor = words.NewExtractor(words.LimitsFromConfig(cfg.Words), m.logger)
	}
	m.corrector = suggest.NewCorrector(m.logger)
	return m
}

// Activate handles a buffer gaining focus: the session's key cache is
// reloaded from the locale directory of the window's first folder. Reload
// failures are logged and leave the previous keys in place.
func (m *Manager) Activate(ctx context.Context, view host.Buffer, window host.Window) *Session {
	s := m.ensure(view.ID())

	var folders []string
	if window != nil {
		folders = window.Folders()
	}
	dir := utils.LocaleDir(folders, m.cfg.Keys.LocaleSubdir)
	if err := s.Cache.Reload(ctx, dir); err != nil {
		m.logger.Warn("key reload failed", "view", view.ID(), "err", err, "keys", s.Cache.Len())
	}
	return s
}

// Query answers a completion query for view.
func (m *Manager) Query(view host.Buffer, window host.Window, prefix string, locations []int) []suggest.Completion {
	return m.ensure(view.ID()).Composer.Complete(view, window, prefix, locations)
}

// Commit handles the host's "completion committed" event. It corrects the
// inserted text using the anchor stored by the last query; without a
// pending anchor nothing happens.
func (m *Manager) Commit(view host.Buffer) (suggest.Edit, bool) {
	s, ok := m.sessions[view.ID()]
	if !ok {
		return suggest.Edit{}, false
	}
	if !m.gate.Allow(view) {
		s.Composer.Reset()
		return suggest.Edit{}, false
	}
	col, ok := s.Composer.TakeAnchor()
	if !ok {
		return suggest.Edit{}, false
	}
	return m.corrector.Apply(view, col)
}

// Replace runs the text replace command with an explicit anchor column.
func (m *Manager) Replace(view host.Buffer, col int) (suggest.Edit, bool) {
	return m.corrector.Apply(view, col)
}

// Get returns the session of a buffer.
func (m *Manager) Get(id int) (*Session, bool) {
	s, ok := m.sessions[id]
	return s, ok
}

// Close disposes the session of a buffer.
func (m *Manager) Close(id int) {
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int { return len(m.sessions) }

func (m *Manager) ensure(id int) *Session {
	if s, ok := m.sessions[id]; ok {
		return s
	}
	cache := keys.NewCache(m.flattener, m.logger)
	s := &Session{
		ID:       id,
		Cache:    cache,
		Composer: suggest.NewComposer(m.gate, m.extractor, cache, m.cfg.Completion, m.logger),
	}
	m.sessions[id] = s
	m.logger.Debug("session created", "view", id)
	return s
}
