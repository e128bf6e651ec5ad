// Package predicate compiles Lua boolean expressions used to narrow the id
// spaces a randomization pass works on, e.g. "rank >= 0 and id ~= 12".
package predicate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Shopify/go-lua"
)

const chunkGlobal = "__predicate"

// Base functions that reach the filesystem.
var blockedGlobals = []string{"dofile", "loadfile"}

// ErrEmptyExpression is returned when Compile is given blank text.
var ErrEmptyExpression = errors.New("predicate expression is empty")

// Predicate is a compiled expression. It is not safe for concurrent use.
type Predicate struct {
	expr  string
	state *lua.State
	bound []string
}

// Compile parses expr. Row fields are exposed to it as integer globals.
func Compile(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyExpression
	}

	state := lua.NewState()
	openLibraries(state)
	if err := lua.LoadString(state, "return "+expr); err != nil {
		return nil, fmt.Errorf("compile predicate %q: %w", expr, err)
	}
	state.SetGlobal(chunkGlobal)

	return &Predicate{expr: expr, state: state}, nil
}

// openLibraries loads only the base, string and math libraries. Expressions
// get no io, os or package access.
func openLibraries(state *lua.State) {
	for _, lib := range []lua.RegistryFunction{
		{Name: "_G", Function: lua.BaseOpen},
		{Name: "string", Function: lua.StringOpen},
		{Name: "math", Function: lua.MathOpen},
	} {
		lua.Require(state, lib.Name, lib.Function, true)
		state.Pop(1)
	}
	for _, name := range blockedGlobals {
		state.PushNil()
		state.SetGlobal(name)
	}
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expr
}

// Eval runs the expression against one row.
func (p *Predicate) Eval(fields map[string]int) (bool, error) {
	p.state.SetTop(0)
	for _, name := range p.bound {
		p.state.PushNil()
		p.state.SetGlobal(name)
	}
	p.bound = p.bound[:0]

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.state.PushInteger(fields[name])
		p.state.SetGlobal(name)
		p.bound = append(p.bound, name)
	}

	p.state.Global(chunkGlobal)
	if err := p.state.ProtectedCall(0, 1, 0); err != nil {
		return false, fmt.Errorf("evaluate predicate %q: %w", p.expr, err)
	}
	defer p.state.Pop(1)
	if !p.state.IsBoolean(-1) {
		return false, fmt.Errorf("predicate %q must return a boolean, got %s", p.expr, lua.TypeNameOf(p.state, -1))
	}
	return p.state.ToBoolean(-1), nil
}

// Filter returns the ids in ids whose row satisfies p. row supplies the
// fields for one id.
func (p *Predicate) Filter(ids []int, row func(id int) map[string]int) ([]int, error) {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		ok, err := p.Eval(row(id))
		if err != nil {
			return nil, fmt.Errorf("id %d: %w", id, err)
		}
		if ok {
			out = append(out, id)
		}
	}
	return out, nil
}
