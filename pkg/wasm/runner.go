package wasm

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/sandrolain/goexpr/pkg/cache"
	"github.com/sandrolain/goexpr/pkg/evaluator"
	"github.com/sandrolain/goexpr/pkg/types"
)

// Runner executes compiled programs in a wazero runtime.
//
// Safe for concurrent use. Compiled modules are cached per program and
// closed when they are evicted. Every Run instantiates a fresh anonymous
// module from the cached one, so concurrent runs never share linear memory
// or state.
type Runner struct {
	opts     RunnerOptions
	logger   *slog.Logger
	runtime  wazero.Runtime
	compiled wazero.CompilationCache
	programs *cache.Cache[*Program]
	modules  *cache.Cache[*module]
}

// module is a cached wazero.CompiledModule. Instantiation holds mu for
// reading so eviction never closes a module halfway through instantiating it.
type module struct {
	mu       sync.RWMutex
	compiled wazero.CompiledModule
	closed   bool
}

// acquire locks m for instantiation. It reports false if m was already closed.
func (m *module) acquire() bool {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return false
	}
	return true
}

func (m *module) release() {
	m.mu.RUnlock()
}

func (m *module) close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.compiled.Close(ctx)
}

// RunnerOptions configures runner behavior.
type RunnerOptions struct {
	// CacheSize sets the maximum number of programs, and of compiled
	// modules, the runner keeps. Defaults to 256.
	CacheSize int
	// Interpreter selects wazero's interpreter engine instead of the
	// optimizing compiler.
	Interpreter bool
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*RunnerOptions)

// NewRunner creates a Runner backed by a new wazero runtime.
// Call Close to release it.
func NewRunner(ctx context.Context, opts ...RunnerOption) *Runner {
	options := RunnerOptions{
		CacheSize: 256,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	cfg := wazero.NewRuntimeConfig()
	if options.Interpreter {
		cfg = wazero.NewRuntimeConfigInterpreter()
	}
	compiled := wazero.NewCompilationCache()
	cfg = cfg.WithCompilationCache(compiled)

	r := &Runner{
		opts:     options,
		logger:   options.Logger,
		runtime:  wazero.NewRuntimeWithConfig(ctx, cfg),
		compiled: compiled,
		programs: cache.New[*Program](options.CacheSize),
		modules:  cache.New[*module](options.CacheSize),
	}
	r.modules.OnEvict(r.evictModule)
	return r
}

func (r *Runner) evictModule(key string, m *module) {
	if r.opts.Debug {
		r.logger.Debug("closing compiled module", "key", key)
	}
	if err := m.close(context.Background()); err != nil {
		r.logger.Warn("close compiled module", "key", key, "error", err)
	}
}

// acquireModule returns an acquired compiled module for prog, compiling it on a
// cache miss. The caller must release it.
func (r *Runner) acquireModule(ctx context.Context, prog *Program) (*module, error) {
	for {
		m, err := r.modules.GetOrCreate(prog.key, func() (*module, error) {
			if r.opts.Debug {
				r.logger.Debug("compiling module", "key", prog.key)
			}
			compiled, err := r.runtime.CompileModule(ctx, prog.binary)
			if err != nil {
				return nil, types.NewError(types.ErrCompileModule, "compile module").WithCause(err)
			}
			return &module{compiled: compiled}, nil
		})
		if err != nil {
			return nil, err
		}
		if m.acquire() {
			return m, nil
		}
		// Evicted between lookup and use; the next lookup compiles it again.
	}
}

// Compile returns the program for expr, reusing a cached one when the same
// tree was compiled before.
func (r *Runner) Compile(expr types.Expression) (*Program, error) {
	if expr == nil {
		return nil, types.NewError(types.ErrInvalidExpression, "invalid expression")
	}
	key := programKey(expr)
	return r.programs.GetOrCreate(key, func() (*Program, error) {
		if r.opts.Debug {
			r.logger.Debug("compiling program", "key", key)
		}
		return Compile(expr)
	})
}

// Eval compiles expr (or reuses its cached program) and runs it against c.
func (r *Runner) Eval(ctx context.Context, expr types.Expression, c *evaluator.EvalContext) (int64, error) {
	prog, err := r.Compile(expr)
	if err != nil {
		return 0, err
	}
	return r.Run(ctx, prog, c)
}

// Run executes prog with its parameters resolved against c. A nil context
// behaves like an empty one.
//
// Parameters are resolved in left-to-right order, so an unbound variable
// yields the same *types.UndefinedVariableError the evaluator returns.
func (r *Runner) Run(ctx context.Context, prog *Program, c *evaluator.EvalContext) (int64, error) {
	if prog == nil {
		return 0, types.NewError(types.ErrInvalidExpression, "invalid program")
	}

	params := make([]uint64, len(prog.params))
	for i, name := range prog.params {
		v, err := c.Lookup(name)
		if err != nil {
			return 0, err
		}
		params[i] = api.EncodeI64(v)
	}

	m, err := r.acquireModule(ctx, prog)
	if err != nil {
		return 0, err
	}
	mod, err := r.runtime.InstantiateModule(ctx, m.compiled, wazero.NewModuleConfig().WithName(""))
	m.release()
	if err != nil {
		return 0, types.NewError(types.ErrExecuteModule, "instantiate module").WithCause(err)
	}
	defer mod.Close(ctx)

	fn := mod.ExportedFunction(ExportName)
	if fn == nil {
		return 0, types.NewError(types.ErrExecuteModule, "missing export").WithToken(ExportName)
	}
	results, err := fn.Call(ctx, params...)
	if err != nil {
		return 0, types.NewError(types.ErrExecuteModule, "call").WithToken(ExportName).WithCause(err)
	}

	if r.opts.Debug {
		r.logger.Debug("program executed", "program", prog, "result", int64(results[0]))
	}
	return int64(results[0]), nil
}

// CachedPrograms returns the number of programs held by the compile cache.
func (r *Runner) CachedPrograms() int {
	return r.programs.Len()
}

// CachedModules returns the number of compiled modules currently cached.
func (r *Runner) CachedModules() int {
	return r.modules.Len()
}

// Close closes every cached module, then the wazero runtime and its
// compilation cache.
func (r *Runner) Close(ctx context.Context) error {
	r.programs.Clear()
	r.modules.Clear()
	if err := r.runtime.Close(ctx); err != nil {
		return err
	}
	return r.compiled.Close(ctx)
}

// WithCacheSize sets the maximum number of cached programs and compiled
// modules.
func WithCacheSize(size int) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.CacheSize = size
	}
}

// WithInterpreter selects wazero's interpreter engine.
func WithInterpreter(enabled bool) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.Interpreter = enabled
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.Logger = logger
	}
}
