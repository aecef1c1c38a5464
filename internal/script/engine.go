package script

import (
	"fmt"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/dispatch"
	"github.com/dshills/stagehand/internal/scene"
)

// handlersKey is the global table holding registered Lua callbacks so
// the collector cannot reclaim them.
const handlersKey = "_stage_handlers"

// LogFunc receives log lines from scripts. Level is one of debug,
// info, warn, error.
type LogFunc func(level, msg string)

// Engine hosts the Lua interpreter and the stage module.
//
// gopher-lua's LState is not goroutine-safe. The engine serializes
// all entry points with a mutex; stage module functions run inside
// those entry points and share the lock.
type Engine struct {
	L *lua.LState

	mu     sync.Mutex
	closed bool

	reg      *scene.Registry
	logf     LogFunc
	handlers *lua.LTable
	nextID   int

	// Handler call state. Valid only while a callback runs.
	inCall  bool
	pending dispatch.Result
	surface backend.Surface
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogFunc routes stage.log output to fn.
func WithLogFunc(fn LogFunc) Option {
	return func(e *Engine) {
		e.logf = fn
	}
}

// New creates an engine bound to the given scene registry and
// installs the stage module.
func New(reg *scene.Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:  reg,
		logf: func(level, msg string) {},
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	e.L = L
	openSafeLibraries(L)

	e.handlers = L.NewTable()
	L.SetGlobal(handlersKey, e.handlers)

	e.installStageModule()
	return e
}

// openSafeLibraries opens only safe Lua standard libraries. io, os,
// debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoFile executes a Lua file. Execution is synchronous.
func (e *Engine) DoFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return e.doWithRecovery(func() error {
		return e.L.DoFile(path)
	})
}

// DoString executes a Lua string. Execution is synchronous.
func (e *Engine) DoString(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return e.doWithRecovery(func() error {
		return e.L.DoString(code)
	})
}

// LoadDir executes every *.lua file in dir in lexical order. A
// missing directory is not an error; scripting is simply unused.
func (e *Engine) LoadDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("scanning script directory %s: %w", dir, err)
	}
	for _, path := range paths {
		if err := e.DoFile(path); err != nil {
			return &ScriptError{Source: path, Err: err}
		}
	}
	return nil
}

// doWithRecovery executes fn with panic recovery.
func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// IsClosed returns true if the engine has been closed.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close releases the Lua state. Registered handlers become inert
// no-ops rather than errors so a scene tree can outlive its scripts.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

// storeHandler saves a Lua function against a fresh id.
func (e *Engine) storeHandler(fn *lua.LFunction) int {
	e.nextID++
	e.handlers.RawSetInt(e.nextID, fn)
	return e.nextID
}

// call invokes a stored handler with args and returns the control
// signal it staged. Callers hold no lock.
func (e *Engine) call(id int, args []dispatch.Value) dispatch.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callLocked(id, args)
}

// callFrame invokes a stored frame hook with the surface exposed to
// the drawing functions for the duration of the call.
func (e *Engine) callFrame(id int, surface backend.Surface) dispatch.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.surface = surface
	defer func() { e.surface = nil }()
	return e.callLocked(id, nil)
}

// callGuard evaluates a stored guard predicate against one attribute
// value. Truthy passes. Dispatch predicates cannot carry errors, so a
// raising predicate fails its guard and the error goes to the log
// sink. Callers hold no lock. Guards run outside handler context;
// staging quit or switch_to from one raises.
func (e *Engine) callGuard(id int, v dispatch.Value) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	fn := e.handlers.RawGetInt(id)
	if fn.Type() != lua.LTFunction {
		return false
	}

	var pass bool
	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		e.L.Push(fn)
		e.L.Push(toLua(e.L, v))
		if callErr = e.L.PCall(1, 1, nil); callErr == nil {
			pass = lua.LVAsBool(e.L.Get(-1))
			e.L.Pop(1)
		}
	}()
	if callErr != nil {
		e.logf("error", fmt.Sprintf("guard: %v", callErr))
		return false
	}
	return pass
}

// callLocked runs a stored handler under the engine lock.
func (e *Engine) callLocked(id int, args []dispatch.Value) dispatch.Result {
	if e.closed {
		return dispatch.Continue()
	}
	fn := e.handlers.RawGetInt(id)
	if fn.Type() != lua.LTFunction {
		return dispatch.Failf("script handler %d not found", id)
	}

	e.pending = dispatch.Continue()
	e.inCall = true
	defer func() { e.inCall = false }()

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		e.L.Push(fn)
		for _, a := range args {
			e.L.Push(toLua(e.L, a))
		}
		callErr = e.L.PCall(len(args), 0, nil)
	}()
	if callErr != nil {
		return dispatch.Fail(&ScriptError{Source: "<handler>", Err: callErr})
	}
	return e.pending
}
