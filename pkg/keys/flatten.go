package keys

import (
	"context"
	"fmt"

	"github.com/bastiangx/ri18n/pkg/config"
)

// Flattener turns a locale directory into dotted translation keys.
type Flattener interface {
	Flatten(ctx context.Context, dir string) ([]string, error)
}

// FlattenerFunc adapts a function to Flattener.
type FlattenerFunc func(ctx context.Context, dir string) ([]string, error)

// Flatten implements Flattener.
func (f FlattenerFunc) Flatten(ctx context.Context, dir string) ([]string, error) {
	return f(ctx, dir)
}

// NewFlattener builds the flattener selected by cfg.Mode.
func NewFlattener(cfg config.KeysConfig) (Flattener, error) {
	switch cfg.Mode {
	case config.ModeYAML, "":
		return &YAMLFlattener{MaxDepth: cfg.MaxDepth}, nil
	case config.ModeProcess:
		if cfg.Helper == "" {
			return nil, fmt.Errorf("process flattener needs a helper script")
		}
		return &ProcessFlattener{
			Interpreter: cfg.Interpreter,
			Helper:      cfg.Helper,
			Timeout:     cfg.Timeout(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown flattener mode %q", cfg.Mode)
	}
}
