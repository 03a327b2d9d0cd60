package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/sandrolain/goexpr/pkg/types"
)

// Evaluator evaluates expression trees against a context.
// It holds no per-evaluation state and is safe for concurrent use.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Debug enables per-node debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

var defaultEvaluator = New()

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	var options EvalOptions
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
	}
}

// Evaluate evaluates expr against c with a default Evaluator.
func Evaluate(expr types.Expression, c *EvalContext) (int64, error) {
	return defaultEvaluator.Eval(expr, c)
}

// Eval evaluates expr against c. A nil context behaves like an empty one.
//
// The only failure for a well-formed tree is *types.UndefinedVariableError,
// returned unchanged for the first unbound variable reached.
func (e *Evaluator) Eval(expr types.Expression, c *EvalContext) (int64, error) {
	if expr == nil {
		return 0, types.NewError(types.ErrInvalidExpression, "invalid expression")
	}

	result, err := e.evalNode(expr, c, 0)
	if err != nil {
		if e.opts.Debug {
			e.logger.Debug("evaluation failed", "error", err)
		}
		return 0, err
	}
	return result, nil
}

func (e *Evaluator) evalNode(node types.Expression, c *EvalContext, depth int) (int64, error) {
	if e.opts.Debug {
		e.logger.Debug("evaluating node",
			"type", node.Type(),
			"node", node,
			"depth", depth)
	}

	switch n := node.(type) {
	case *types.Literal:
		return n.Value(), nil
	case *types.Variable:
		return c.Lookup(n.Name())
	case *types.BinaryOp:
		return e.evalBinary(n, c, depth)
	default:
		panic(fmt.Sprintf("evaluator: unexpected node %T", node))
	}
}

func (e *Evaluator) evalBinary(node *types.BinaryOp, c *EvalContext, depth int) (int64, error) {
	left, err := e.evalNode(node.LHS(), c, depth+1)
	if err != nil {
		return 0, err
	}

	right, err := e.evalNode(node.RHS(), c, depth+1)
	if err != nil {
		return 0, err
	}

	switch node.Op() {
	case types.OpAdd:
		return left + right, nil
	case types.OpSub:
		return left - right, nil
	default:
		panic(fmt.Sprintf("evaluator: unexpected operator %v", node.Op()))
	}
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}
