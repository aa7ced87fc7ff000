// Package app provides the application kernel: it owns the lifecycle
// manager, the router, and the process start/stop sequence.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-sugar/framework/config"
	"github.com/km-arc/go-sugar/framework/lifecycle"
	"github.com/km-arc/go-sugar/framework/logging"
	sugarhttp "github.com/km-arc/go-sugar/http"
	"github.com/km-arc/go-sugar/routing"
)

// Application is the top-level kernel. It wires a lifecycle.Manager to a
// chi-backed router and runs startup and shutdown exactly once per process.
//
//	a := app.New("orders", "order management service")
//	cache.Register(a.Manager)
//	database.Register(a.Manager)
//
//	a.Router.Get("/orders/{id}", app.Inject(a, database.ID, showOrder))
//
//	a.Run()
type Application struct {
	Title       string
	Description string
	Manager     *lifecycle.Manager
	Router      *routing.Router

	onStart []func() error
	onStop  []func() error

	startOnce sync.Once
	stopOnce  sync.Once
	startErr  error
	stopErr   error
}

// New creates an application kernel with Settings and Logger already
// registered. envFiles are handed to the Settings object (default ".env").
func New(title, description string, envFiles ...string) *Application {
	m := lifecycle.New()
	// A fresh manager cannot reject these.
	_ = config.Register(m, envFiles...)
	_ = logging.Register(m)

	a := &Application{
		Title:       title,
		Description: description,
		Manager:     m,
		Router:      routing.New(),
	}
	a.Router.Middleware(a.requestContext)
	a.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		sugarhttp.NewResponse(w).OK(map[string]string{"status": "ok"})
	})
	return a
}

// Register forwards a registration to the manager.
func (a *Application) Register(reg lifecycle.Registration) error {
	return a.Manager.Register(reg)
}

// OnStart adds a hook run after the manager's Startup succeeds.
func (a *Application) OnStart(fn func() error) { a.onStart = append(a.onStart, fn) }

// OnStop adds a hook run after the manager's Shutdown completes.
func (a *Application) OnStop(fn func() error) { a.onStop = append(a.onStop, fn) }

// Settings resolves the Settings object.
func (a *Application) Settings() (*config.Settings, error) {
	return lifecycle.Resolve[*config.Settings](a.Manager, config.ID)
}

// Logger returns the application logger, or a no-op logger until the
// logging object has been set up.
func (a *Application) Logger() *zap.Logger {
	l, err := lifecycle.Resolve[*logging.Logger](a.Manager, logging.ID)
	if err != nil {
		return zap.NewNop()
	}
	return l.Zap()
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

// Start runs the manager's Startup and the OnStart hooks, exactly once per
// process. Repeated calls return the first outcome.
func (a *Application) Start() error {
	a.startOnce.Do(func() {
		if err := a.Manager.Startup(); err != nil {
			a.startErr = err
			return
		}
		log := a.Logger()
		log.Info("application started",
			zap.String("service", a.Title),
			zap.String("description", a.Description),
		)
		if settings, err := a.Settings(); err == nil {
			log.Info("configuration",
				zap.String("version", settings.Version()),
				zap.Bool("debug", settings.Debug()),
				zap.Int("objects", len(a.Manager.IDs())),
			)
		}
		for _, fn := range a.onStart {
			if err := fn(); err != nil {
				a.startErr = err
				return
			}
		}
	})
	return a.startErr
}

// Stop runs the manager's Shutdown and the OnStop hooks, exactly once.
func (a *Application) Stop() error {
	a.stopOnce.Do(func() {
		log := a.Logger()
		if err := a.Manager.Shutdown(); err != nil {
			a.stopErr = err
			return
		}
		log.Info("application stopped", zap.String("service", a.Title))
		for _, fn := range a.onStop {
			if err := fn(); err != nil {
				a.stopErr = err
				return
			}
		}
	})
	return a.stopErr
}

// Run starts the application, serves HTTP on PORT (default 8000), and shuts
// down gracefully on SIGINT/SIGTERM.
func (a *Application) Run() error {
	if err := a.Start(); err != nil {
		return err
	}

	port := "8000"
	if settings, err := a.Settings(); err == nil {
		port = settings.Get("PORT", "8000")
	}
	srv := &http.Server{Addr: ":" + port, Handler: a.Router}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	a.Logger().Info("listening", zap.String("addr", srv.Addr))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		_ = a.Stop()
		return err
	case s := <-sig:
		a.Logger().Info("signal received", zap.String("signal", s.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.Logger().Warn("server shutdown", zap.Error(err))
	}
	return a.Stop()
}
