package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bastiangx/ri18n/internal/logger"
	"github.com/bastiangx/ri18n/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(list ...string) *keys.Cache {
	return keys.NewCache(keys.FlattenerFunc(func(context.Context, string) ([]string, error) {
		return list, nil
	}), logger.Discard())
}

func TestInputHandler(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("errors\nzzz\n:reload\n")
	h := NewInputHandler(newCache("errors.blank", "errors.taken", "errors.invalid", "messages.hello"), "locales", 2, in, &out, logger.Discard())

	require.NoError(t, h.Start(context.Background()))

	got := out.String()
	assert.Contains(t, got, "4 keys from locales")
	assert.Contains(t, got, "  1. errors.blank\n")
	assert.Contains(t, got, "  2. errors.taken\n")
	assert.NotContains(t, got, "errors.invalid")
	assert.Contains(t, got, "... 1 more\n")
	assert.Contains(t, got, "no keys start with 'zzz'")
	assert.Contains(t, got, "4 keys\n")
}

func TestInputHandlerNoLimit(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(newCache("a.b", "a.c"), "locales", 0, strings.NewReader("\n"), &out, logger.Discard())

	require.NoError(t, h.Start(context.Background()))
	assert.Contains(t, out.String(), "  2. a.c\n")
	assert.NotContains(t, out.String(), "more")
}

func TestInputHandlerLoadFailure(t *testing.T) {
	var out bytes.Buffer
	h := NewInputHandler(newCache("a"), "", 0, strings.NewReader(""), &out, logger.Discard())

	assert.ErrorIs(t, h.Start(context.Background()), keys.ErrNoLocaleDir)
	assert.Empty(t, out.String())
}
