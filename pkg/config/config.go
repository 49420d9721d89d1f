// Package config loads stability.Params from a small zygomys script,
// the same sandboxed-Lisp-as-configuration approach a DSL engine would
// use to turn source into a design graph — here the script just calls
// setter builtins against a Params value instead of building a graph.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/glycerine/zygomys/zygo"

	"github.com/jurikaur/PrusaSlicer-BOSS/pkg/stability"
)

// linePattern matches zygomys's "Error on line N: ..." error messages.
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// LoadError represents a non-fatal problem in the script: a parse error or
// a runtime error raised by a builtin. Load stops at the first such
// failure, reports it, and returns Defaults().
type LoadError struct {
	Line    int
	Message string
}

func (e LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Loader evaluates Params-configuration scripts. It is safe for concurrent
// use; each call to Load runs in a fresh sandboxed zygomys environment for
// determinism, and a generation counter makes a call fail with a
// "superseded" error when a newer Load call started before it finished.
type Loader struct {
	mu         sync.Mutex
	generation uint64
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load evaluates source starting from stability.Defaults() and returns the
// resulting Params. Builtins mutate the Params value they close over
// directly, so a script that never calls a setter returns the defaults
// unchanged.
//
// Return semantics:
//   - success: Params + nil errors + nil error
//   - parse/eval failure: Defaults() + load errors + nil error
//   - fatal failure (timeout, panic, superseded): Defaults() + nil + error
func (l *Loader) Load(source string) (stability.Params, []LoadError, error) {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	ch := make(chan loadResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- loadResult{params: stability.Defaults(), err: fmt.Errorf("panic during config evaluation: %v", r)}
			}
		}()

		params, loadErrs, err := l.load(source)
		ch <- loadResult{params: params, errors: loadErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &l.mu, &l.generation)
}

func (l *Loader) load(source string) (stability.Params, []LoadError, error) {
	params := stability.Defaults()

	if strings.TrimSpace(source) == "" {
		return params, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, &params)

	if err := env.LoadString(source); err != nil {
		return stability.Defaults(), parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return stability.Defaults(), parseZygomysError(err), nil
	}

	return params, nil, nil
}

func parseZygomysError(err error) []LoadError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []LoadError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []LoadError{{Message: strings.TrimSpace(msg)}}
}
