package scope

import (
	"testing"

	"github.com/bastiangx/ri18n/internal/logger"
	"github.com/bastiangx/ri18n/pkg/buffer"
	"github.com/bastiangx/ri18n/pkg/config"
	"github.com/stretchr/testify/assert"
)

const rubyString = "source.ruby meta.function-call.ruby string.quoted.double.ruby"

func TestIsActive(t *testing.T) {
	tests := []struct {
		name   string
		scope  string
		valid  []string
		active bool
	}{
		{"substring match", rubyString, []string{"string.quoted"}, true},
		{"any entry matches", rubyString, []string{"comment", "double.ruby"}, true},
		{"no match", rubyString, []string{"comment"}, false},
		{"empty list fails closed", rubyString, nil, false},
		{"empty entries are ignored", rubyString, []string{""}, false},
		{"empty scope name", "", []string{"string"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, IsActive(tt.scope, tt.valid))
		})
	}
}

func TestGateAllow(t *testing.T) {
	cfg := config.DefaultConfig()
	gate := NewGate(cfg, logger.Discard())

	view := buffer.New(1, `t("errors")`).SetSelection(5, 5).SetScope(rubyString)
	assert.True(t, gate.Allow(view))

	view.SetSelection(3, 9)
	assert.False(t, gate.Allow(view), "a range selection disables the gate")

	comment := buffer.New(2, "# errors").SetScope("source.ruby comment.line.number-sign.ruby")
	assert.False(t, gate.Allow(comment))

	comment.SetSetting(config.SettingValidScopes, []any{"comment.line"})
	assert.True(t, gate.Allow(comment), "view settings override the global list")
}

func TestGateEmptyConfigFailsClosed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scopes.Valid = nil
	gate := NewGate(cfg, logger.Discard())

	view := buffer.New(1, `t("x")`).SetSelection(4, 4).SetScope(rubyString)
	assert.False(t, gate.Allow(view))
}
