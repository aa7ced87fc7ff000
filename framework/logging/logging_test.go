package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-sugar/framework/config"
	"github.com/km-arc/go-sugar/framework/lifecycle"
	"github.com/km-arc/go-sugar/framework/logging"
)

func settings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.New("testdata/missing.env")
	if err := s.Setup(); err != nil {
		t.Fatalf("settings setup: %v", err)
	}
	return s
}

func TestLogger_Setup_BuildsLogger(t *testing.T) {
	l := logging.New(settings(t))

	if err := l.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if !l.Present() || l.Zap() == nil {
		t.Error("Setup should populate the zap payload")
	}
	if err := l.Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	if l.Present() {
		t.Error("Teardown should clear the payload")
	}
}

func TestLogger_Zap_BeforeSetupIsNop(t *testing.T) {
	l := logging.New(settings(t))
	if l.Zap() == nil {
		t.Fatal("Zap before Setup should return a usable no-op logger")
	}
}

func TestLogger_Setup_LevelFromSettings(t *testing.T) {
	t.Setenv("APP_LOGGING_LEVEL", "warn")
	l := logging.New(settings(t))
	if err := l.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if l.Zap().Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled when LOGGING_LEVEL=warn")
	}
}

func TestLogger_Setup_BadLevel(t *testing.T) {
	t.Setenv("APP_LOGGING_LEVEL", "chatty")
	l := logging.New(settings(t))
	if err := l.Setup(); err == nil {
		t.Fatal("bad LOGGING_LEVEL should fail Setup")
	}
}

func TestLogger_Register_StartsAfterSettings(t *testing.T) {
	m := lifecycle.New()
	if err := config.Register(m, "testdata/missing.env"); err != nil {
		t.Fatalf("config.Register: %v", err)
	}
	if err := logging.Register(m); err != nil {
		t.Fatalf("logging.Register: %v", err)
	}

	if err := m.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	l, err := lifecycle.Resolve[*logging.Logger](m, logging.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !l.Present() {
		t.Error("logger should be set up by Startup")
	}
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
