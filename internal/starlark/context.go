package starlark

import (
	"fmt"
	"maps"
	"sync"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ExecutionContext provides all globals and state for Starlark template execution.
type ExecutionContext struct {
	// Vars dict of user-supplied template variables.
	// Accessible as: vars["schema"], or directly as schema.
	Vars *starlark.Dict

	// Dialect is the SQL dialect the rendered text will be parsed with.
	Dialect string

	// File describes the template being rendered.
	// Accessible as: file.name, file.path
	File *FileInfo

	// Extra holds additional globals such as helper functions.
	Extra starlark.StringDict

	pool *ThreadPool

	// globals is the combined set of all globals for execution
	globals starlark.StringDict

	// mu protects globals during initialization
	mu sync.RWMutex
}

// NewExecutionContext creates a new execution context with the given parameters.
func NewExecutionContext(vars *starlark.Dict, dialect string, file *FileInfo) *ExecutionContext {
	return NewContext(vars, dialect, file)
}

// buildGlobals constructs the combined globals dict.
func (ctx *ExecutionContext) buildGlobals() {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	ctx.globals = Predeclared(ctx.Vars, ctx.Dialect, ctx.File)
	maps.Copy(ctx.globals, ctx.Extra)
}

// Globals returns the combined globals dictionary for Starlark execution.
func (ctx *ExecutionContext) Globals() starlark.StringDict {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.globals
}

// AddGlobals adds extra globals to the context.
// Returns error if a name conflicts with a builtin.
func (ctx *ExecutionContext) AddGlobals(extra starlark.StringDict) error {
	for name := range extra {
		if isBuiltin(name) {
			return fmt.Errorf("global %q conflicts with builtin", name)
		}
	}

	ctx.mu.Lock()
	if ctx.Extra == nil {
		ctx.Extra = make(starlark.StringDict, len(extra))
	}
	maps.Copy(ctx.Extra, extra)
	ctx.mu.Unlock()

	ctx.buildGlobals()
	return nil
}

// EvalExpr evaluates a single Starlark expression and returns the result.
// This is used for {{ expr }} template expressions.
func (ctx *ExecutionContext) EvalExpr(expr string, filename string, line int) (starlark.Value, error) {
	return ctx.EvalExprWithLocals(expr, filename, line, nil)
}

// EvalExprWithLocals evaluates a Starlark expression with additional local variables.
// This is used for expressions inside loops where loop variables need to be in scope.
func (ctx *ExecutionContext) EvalExprWithLocals(expr string, filename string, line int, locals starlark.StringDict) (starlark.Value, error) {
	thread := ctx.pool.Get(filename)
	defer ctx.pool.Put(thread)

	// locals take precedence
	globals := ctx.Globals()
	if len(locals) > 0 {
		combined := make(starlark.StringDict, len(globals)+len(locals))
		maps.Copy(combined, globals)
		maps.Copy(combined, locals)
		globals = combined
	}

	result, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, filename, expr, globals)
	if err != nil {
		return nil, &EvalError{
			File:    filename,
			Line:    line,
			Expr:    expr,
			Message: err.Error(),
		}
	}

	return result, nil
}

// EvalExprString evaluates a Starlark expression and returns the string result.
// This is the typical use case for template expressions.
func (ctx *ExecutionContext) EvalExprString(expr string, filename string, line int) (string, error) {
	return ctx.EvalExprStringWithLocals(expr, filename, line, nil)
}

// EvalExprStringWithLocals evaluates a Starlark expression with local variables and returns the string result.
func (ctx *ExecutionContext) EvalExprStringWithLocals(expr string, filename string, line int, locals starlark.StringDict) (string, error) {
	result, err := ctx.EvalExprWithLocals(expr, filename, line, locals)
	if err != nil {
		return "", err
	}
	return ValueString(result), nil
}

// ValueString renders a Starlark value as template output. Strings are
// emitted without quotes and None renders empty.
func ValueString(v starlark.Value) string {
	switch v := v.(type) {
	case starlark.String:
		return string(v)
	case starlark.NoneType:
		return ""
	default:
		return v.String()
	}
}

// EvalError represents an error during Starlark expression evaluation.
type EvalError struct {
	File    string
	Line    int
	Expr    string
	Message string
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: error evaluating %q: %s", e.File, e.Line, e.Expr, e.Message)
	}
	return fmt.Sprintf("%s: error evaluating %q: %s", e.File, e.Expr, e.Message)
}

// ContextOption is a functional option for configuring ExecutionContext.
type ContextOption func(*ExecutionContext)

// WithGlobals sets extra globals for the context. Names that collide with
// a builtin are ignored.
func WithGlobals(extra starlark.StringDict) ContextOption {
	return func(ctx *ExecutionContext) {
		ctx.Extra = make(starlark.StringDict, len(extra))
		for name, v := range extra {
			if !isBuiltin(name) {
				ctx.Extra[name] = v
			}
		}
	}
}

// WithThreadPool makes the context take its threads from a shared pool.
func WithThreadPool(pool *ThreadPool) ContextOption {
	return func(ctx *ExecutionContext) {
		ctx.pool = pool
	}
}

// NewContext creates a new execution context with functional options.
func NewContext(vars *starlark.Dict, dialect string, file *FileInfo, opts ...ContextOption) *ExecutionContext {
	ctx := &ExecutionContext{
		Vars:    vars,
		Dialect: dialect,
		File:    file,
	}

	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.pool == nil {
		ctx.pool = NewThreadPool(1)
	}

	ctx.buildGlobals()
	return ctx
}
