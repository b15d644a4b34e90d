package keys

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ProcessFlattener runs an external helper as
//
//	<Interpreter> <Helper> <dir>
//
// and reads a JSON array of key strings from its stdout. With no Interpreter
// the helper is executed directly.
type ProcessFlattener struct {
	Interpreter string
	Helper      string
	Timeout     time.Duration
}

// Flatten implements Flattener.
func (p *ProcessFlattener) Flatten(ctx context.Context, dir string) ([]string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	name, args := p.Helper, []string{dir}
	if p.Interpreter != "" {
		name, args = p.Interpreter, []string{p.Helper, dir}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("helper %s: %w", p.Helper, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("helper %s exited with %d: %s", p.Helper, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("failed to run helper %s: %w", p.Helper, err)
	}

	return ParseKeyList(stdout.Bytes())
}

// ParseKeyList decodes a JSON array of strings.
func ParseKeyList(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedOutput)
	}
	result := gjson.ParseBytes(data)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: expected an array, got %s", ErrMalformedOutput, result.Type)
	}

	var keys []string
	var bad error
	result.ForEach(func(_, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = fmt.Errorf("%w: non-string element %s", ErrMalformedOutput, value.Raw)
			return false
		}
		keys = append(keys, value.String())
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}
