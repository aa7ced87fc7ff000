// Package logging provides the application logger as a lifecycle object: a
// proxy over *zap.Logger configured from Settings.
//
// The logger is registered non-injectable — it participates in startup
// ordering (it must exist before anything that logs during Setup) but is
// reached through the Zap accessor rather than a constructor argument.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-sugar/framework/config"
	"github.com/km-arc/go-sugar/framework/lifecycle"
)

// ID is the identity under which Logger is registered.
const ID lifecycle.ID = "Logger"

// Logger is a lifecycle proxy over a configured *zap.Logger.
//
// Debug mode (Settings.Debug) builds a development logger: console encoder,
// level defaulting to debug. Production builds a JSON logger with ISO-8601
// timestamps and caller annotations. LOGGING_LEVEL overrides the level in
// both modes.
type Logger struct {
	*lifecycle.Proxy[*zap.Logger]
	settings *config.Settings
}

// New creates a Logger configured from settings.
func New(settings *config.Settings) *Logger {
	l := &Logger{settings: settings}
	l.Proxy = lifecycle.NewProxy(l.build).
		TeardownWith(func(z *zap.Logger) error {
			// Sync fails on non-file stderr sinks; flushing is best effort.
			_ = z.Sync()
			return nil
		})
	return l
}

// Register adds Logger to a manager under ID, depending on Settings.
func Register(m *lifecycle.Manager) error {
	return m.Register(lifecycle.Registration{
		ID:            ID,
		Dependencies:  []lifecycle.ID{config.ID},
		NonInjectable: true,
		Construct: func(deps lifecycle.Deps) (lifecycle.Object, error) {
			settings, ok := deps["settings"].(*config.Settings)
			if !ok {
				return nil, fmt.Errorf("logging: settings dependency missing")
			}
			return New(settings), nil
		},
	})
}

// Zap returns the configured logger, or a no-op logger before Setup.
func (l *Logger) Zap() *zap.Logger {
	if !l.Present() {
		return zap.NewNop()
	}
	return l.Payload()
}

func (l *Logger) build() (*zap.Logger, error) {
	var cfg zap.Config
	if l.settings.Debug() {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if lvl := l.settings.Get("LOGGING_LEVEL", ""); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("logging: bad LOGGING_LEVEL %q: %w", lvl, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	return cfg.Build()
}
