package database_test

import (
	"path/filepath"
	"testing"

	"github.com/km-arc/go-sugar/framework/config"
	"github.com/km-arc/go-sugar/framework/database"
	"github.com/km-arc/go-sugar/framework/lifecycle"
)

func settings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.New("testdata/missing.env")
	if err := s.Setup(); err != nil {
		t.Fatalf("settings setup: %v", err)
	}
	return s
}

func TestStore_Setup_InMemoryRoundTrip(t *testing.T) {
	st := database.New(settings(t)) // DB_PATH defaults to :memory:
	if err := st.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	if _, err := st.DB().Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatalf("CREATE: %v", err)
	}
	if _, err := st.DB().Exec(`INSERT INTO kv (k, v) VALUES (?, ?)`, "greeting", "hello"); err != nil {
		t.Fatalf("INSERT: %v", err)
	}
	var v string
	if err := st.DB().QueryRow(`SELECT v FROM kv WHERE k = ?`, "greeting").Scan(&v); err != nil || v != "hello" {
		t.Fatalf("SELECT: got %q, %v", v, err)
	}

	if err := st.Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	if st.Present() {
		t.Error("Teardown should clear the handle")
	}
}

func TestStore_Setup_FileBacked(t *testing.T) {
	t.Setenv("APP_DB_PATH", filepath.Join(t.TempDir(), "app.db"))

	st := database.New(settings(t))
	if err := st.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer func() {
		if err := st.Teardown(); err != nil {
			t.Errorf("Teardown: %v", err)
		}
	}()
	if _, err := st.DB().Exec(`CREATE TABLE t (id INTEGER)`); err != nil {
		t.Fatalf("CREATE: %v", err)
	}
}

func TestStore_Register_ResolvesThroughManager(t *testing.T) {
	m := lifecycle.New()
	if err := config.Register(m, "testdata/missing.env"); err != nil {
		t.Fatalf("config.Register: %v", err)
	}
	if err := database.Register(m); err != nil {
		t.Fatalf("database.Register: %v", err)
	}

	if err := m.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	st, err := lifecycle.Resolve[*database.Store](m, database.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := st.DB().Ping(); err != nil {
		t.Errorf("resolved handle should be live: %v", err)
	}
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
