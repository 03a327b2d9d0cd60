package evaluator

import (
	"fmt"

	"github.com/sandrolain/goexpr/pkg/types"
)

// EvalContext maps variable names to integer values.
//
// An EvalContext is not safe for concurrent mutation: the goroutine that owns
// it is the only one allowed to Bind. Reading it from several evaluations at
// once is fine as long as nobody binds meanwhile.
type EvalContext struct {
	// parent is consulted when a name is not bound locally
	parent *EvalContext

	// bindings stores variable assignments
	bindings map[string]int64
}

// NewContext creates an empty evaluation context.
func NewContext() *EvalContext {
	return &EvalContext{
		bindings: make(map[string]int64),
	}
}

// NewChildContext creates a context whose own bindings shadow c's.
// Binding in the child never changes c.
func (c *EvalContext) NewChildContext() *EvalContext {
	return &EvalContext{
		parent:   c,
		bindings: make(map[string]int64),
	}
}

// Parent returns the parent context.
func (c *EvalContext) Parent() *EvalContext {
	return c.parent
}

// Bind inserts or overwrites a variable binding.
func (c *EvalContext) Bind(name string, value int64) {
	c.bindings[name] = value
}

// Get retrieves a variable binding.
// It searches the current context and parent contexts.
func (c *EvalContext) Get(name string) (int64, bool) {
	if c == nil {
		return 0, false
	}
	if value, ok := c.bindings[name]; ok {
		return value, true
	}
	if c.parent != nil {
		return c.parent.Get(name)
	}
	return 0, false
}

// Lookup is like Get but reports an absent name as
// *types.UndefinedVariableError.
func (c *EvalContext) Lookup(name string) (int64, error) {
	value, ok := c.Get(name)
	if !ok {
		return 0, &types.UndefinedVariableError{Name: name}
	}
	return value, nil
}

// SetBindings sets multiple variable bindings at once.
func (c *EvalContext) SetBindings(bindings map[string]int64) {
	for name, value := range bindings {
		c.bindings[name] = value
	}
}

// Len returns the number of bindings held by c itself, excluding parents.
func (c *EvalContext) Len() int {
	return len(c.bindings)
}

// Clone creates a shallow copy of the context with the same bindings.
func (c *EvalContext) Clone() *EvalContext {
	newBindings := make(map[string]int64, len(c.bindings))
	for k, v := range c.bindings {
		newBindings[k] = v
	}

	return &EvalContext{
		parent:   c.parent,
		bindings: newBindings,
	}
}

// String returns a string representation of the context.
func (c *EvalContext) String() string {
	depth := 0
	for p := c.parent; p != nil; p = p.parent {
		depth++
	}
	return fmt.Sprintf("Context{depth=%d, bindings=%d}", depth, len(c.bindings))
}
