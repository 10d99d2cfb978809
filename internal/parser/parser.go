// Package parser evaluates the JavaScript data files a Doxygen HTML site ships
// (navtreedata.js and its fragments) and exports their global variables.
package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// ErrMissingVar is returned by Globals.Require for an undefined variable.
var ErrMissingVar = errors.New("parser: variable not defined")

// Globals holds exported script variables by name. Arrays arrive as []any,
// strings as string and null as a nil value.
type Globals map[string]any

// Require returns the named variable or ErrMissingVar.
func (g Globals) Require(name string) (any, error) {
	v, ok := g[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingVar, name)
	}
	return v, nil
}

// String returns the named variable if it is a string, otherwise "".
func (g Globals) String(name string) string {
	s, _ := g[name].(string)
	return s
}

// Eval runs src in a fresh goja runtime and exports the requested globals.
// Names the script does not define are left out of the result. The run is
// interrupted when ctx is done.
func Eval(ctx context.Context, src []byte, names ...string) (Globals, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	vm := goja.New()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt("evaluation cancelled")
		case <-done:
		}
	}()

	if _, err := vm.RunString(string(src)); err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, fmt.Errorf("parser: interrupted: %v: %w", interrupted.Value(), context.Cause(ctx))
		}
		return nil, fmt.Errorf("parser: evaluate: %w", err)
	}

	out := make(Globals, len(names))
	for _, name := range names {
		v := vm.Get(name)
		if v == nil || goja.IsUndefined(v) {
			continue
		}
		if goja.IsNull(v) {
			out[name] = nil
			continue
		}
		out[name] = v.Export()
	}
	return out, nil
}
