// Package app wires the backend, scene tree, dispatcher, scripting,
// and replay layers together and drives the main loop.
//
// The loop is single-threaded by design: each iteration polls the
// backend for a batch of events, routes each through the active scene
// tree, runs the per-frame pass, ticks the clock to hold the target
// frame rate, and presents the surface. Handlers therefore never need
// locking; everything that touches the tree happens on the loop
// goroutine.
package app

import (
	"errors"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/config"
	"github.com/dshills/stagehand/internal/dispatch"
	"github.com/dshills/stagehand/internal/event"
	"github.com/dshills/stagehand/internal/replay"
	"github.com/dshills/stagehand/internal/scene"
	"github.com/dshills/stagehand/internal/script"
)

// RootScene is the name of the scene every tree starts from.
const RootScene = "root"

// App coordinates the main loop and owns the scene tree.
type App struct {
	cfg      config.Config
	logger   *Logger
	backend  backend.Backend
	registry *scene.Registry
	root     *scene.Scene
	recorder *replay.Recorder
	engine   *script.Engine

	quitBinding bool
	running     atomic.Bool
}

// Option configures an App.
type Option func(*App)

// WithBackend sets the event and rendering backend. Required before
// Run.
func WithBackend(b backend.Backend) Option {
	return func(a *App) {
		a.backend = b
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithRegistry supplies a pre-built scene registry. A "root" scene is
// created in it if missing.
func WithRegistry(reg *scene.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}

// WithRecorder replaces the trace recorder created from the replay
// config.
func WithRecorder(r *replay.Recorder) Option {
	return func(a *App) {
		a.recorder = r
	}
}

// WithoutQuitBinding disables the default handler that turns quit
// events into a clean shutdown. The application must then install its
// own way out.
func WithoutQuitBinding() Option {
	return func(a *App) {
		a.quitBinding = false
	}
}

// New builds an application from configuration. The scene tree starts
// with an active root scene; handlers and children hang off it.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		cfg:         cfg,
		quitBinding: true,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		lc := DefaultLoggerConfig()
		lc.Level = ParseLogLevel(cfg.LogLevel)
		a.logger = NewLogger(lc)
	}
	if a.registry == nil {
		a.registry = scene.NewRegistry()
	}

	root, err := a.registry.Get(RootScene)
	if err != nil {
		if root, err = a.registry.Create(RootScene); err != nil {
			return nil, &InitError{Component: "scenes", Err: err}
		}
	}
	a.root = root
	if !root.IsActive() {
		if err := root.Activate(); err != nil {
			return nil, &InitError{Component: "scenes", Err: err}
		}
	}

	if a.quitBinding {
		root.Events().Register(event.KindQuit, func(args ...dispatch.Value) dispatch.Result {
			return dispatch.Quit()
		}, nil)
	}

	if a.recorder == nil && cfg.Replay.Record != "" {
		a.recorder = replay.NewRecorder()
	}

	if cfg.Scripts != "" {
		a.engine = script.New(a.registry, script.WithLogFunc(a.scriptLog))
	}

	return a, nil
}

// scriptLog routes stage.log output into the application logger.
func (a *App) scriptLog(level, msg string) {
	lg := a.logger.WithComponent("script")
	switch ParseLogLevel(level) {
	case LogLevelDebug:
		lg.Debug("%s", msg)
	case LogLevelWarn:
		lg.Warn("%s", msg)
	case LogLevelError:
		lg.Error("%s", msg)
	default:
		lg.Info("%s", msg)
	}
}

// Registry returns the scene registry for building the tree.
func (a *App) Registry() *scene.Registry {
	return a.registry
}

// Root returns the root scene.
func (a *App) Root() *scene.Scene {
	return a.root
}

// Logger returns the application logger.
func (a *App) Logger() *Logger {
	return a.logger
}

// Running reports whether the main loop is active.
func (a *App) Running() bool {
	return a.running.Load()
}

// Close releases resources held outside the loop, currently the
// script engine. Safe to call more than once.
func (a *App) Close() error {
	if a.engine != nil {
		return a.engine.Close()
	}
	return nil
}

// Run executes the main loop until a quit signal, an interrupt, or a
// fatal error. The backend is initialized on entry and torn down
// exactly once on every exit path. An interrupt is a clean exit, not
// an error. Run may be called again after it returns; the scene tree
// reinitializes from its registrations.
func (a *App) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if a.backend == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}

	if a.engine != nil {
		if err := a.engine.LoadDir(a.cfg.Scripts); err != nil {
			return &InitError{Component: "scripts", Err: err}
		}
	}

	if err := a.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer a.backend.Teardown()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	a.registry.Init()

	if name := a.cfg.StartScene; name != "" {
		if err := a.registry.Activate(name); err != nil && !errors.Is(err, scene.ErrAlreadyActive) {
			return &InitError{Component: "scenes", Err: err}
		}
	}

	a.logger.Info("loop started: fps=%d scenes=%d", a.cfg.FPS, a.registry.Len())

	err := a.loop(sig)

	if a.recorder != nil && a.cfg.Replay.Record != "" {
		if serr := replay.Save(a.recorder, a.cfg.Replay.Record); serr != nil {
			if err == nil {
				err = serr
			} else {
				a.logger.Error("saving trace: %v", serr)
			}
		} else {
			a.logger.Info("trace saved: %s (%d events)", a.cfg.Replay.Record, a.recorder.Len())
		}
	}
	return err
}

// loop is one poll/dispatch/frame/tick/present cycle per iteration.
// A quit during event dispatch skips that frame's render entirely.
func (a *App) loop(sig <-chan os.Signal) error {
	for {
		select {
		case <-sig:
			a.logger.Info("interrupt received, shutting down")
			return nil
		default:
		}

		if a.recorder != nil {
			a.recorder.BeginFrame()
		}

		quit := false
		for _, ev := range a.backend.Poll() {
			if a.recorder != nil {
				a.recorder.Record(ev)
			}
			done, err := a.resolve(a.root.RunEvent(ev))
			if err != nil {
				return err
			}
			if done {
				quit = true
				break
			}
		}
		if quit {
			return nil
		}

		done, err := a.resolve(a.root.RunFrame(a.backend.Surface()))
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		a.backend.Clock().Tick(a.cfg.FPS)
		a.backend.Present()
	}
}

// resolve maps a dispatch result that reached the loop to loop
// control. A switch arriving here climbed past the root unresolved,
// which is a routing bug in the tree, not a recoverable miss.
func (a *App) resolve(res dispatch.Result) (done bool, err error) {
	switch {
	case res.IsQuit():
		return true, nil
	case res.IsSwitch():
		return false, &RoutingError{Target: res.Target}
	case res.IsError():
		return false, res.Err
	default:
		return false, nil
	}
}
