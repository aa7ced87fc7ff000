package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-sugar/framework/lifecycle"
)

// ID is the identity under which Settings is registered.
// Its injection name defaults to "settings".
const ID lifecycle.ID = "Settings"

// Settings is the application settings object. It is a lifecycle proxy over
// a snapshot of the configured env files, merged with the process
// environment at lookup time: for key "PORT" and app prefix "MYAPP", the
// env var MYAPP_PORT wins over a PORT line in any env file.
//
// The prefix comes from APP_NAME (upper-cased), defaulting to "APP".
type Settings struct {
	*lifecycle.Proxy[map[string]string]
	files  []string
	prefix string
}

// New creates a Settings object reading the given env files (default ".env").
// Missing files are not an error; production often carries env vars only.
func New(files ...string) *Settings {
	if len(files) == 0 {
		files = []string{".env"}
	}
	s := &Settings{
		files:  files,
		prefix: strings.ToUpper(envOr("APP_NAME", "app")),
	}
	s.Proxy = lifecycle.NewProxy(s.load)
	return s
}

// Register adds Settings to a manager under ID.
func Register(m *lifecycle.Manager, files ...string) error {
	return m.Register(lifecycle.Registration{
		ID: ID,
		Construct: func(lifecycle.Deps) (lifecycle.Object, error) {
			return New(files...), nil
		},
	})
}

func (s *Settings) load() (map[string]string, error) {
	merged := make(map[string]string)
	for _, f := range s.files {
		m, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		for k, v := range m {
			merged[strings.ToUpper(k)] = v
		}
	}
	return merged, nil
}

// ── Lookup ───────────────────────────────────────────────────────────────────

// Get returns the value for key, falling back to def when absent.
func (s *Settings) Get(key, def string) string {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return def
}

// MustGet returns the value for key, or a MissingKeyError with remediation
// hints when it is absent.
func (s *Settings) MustGet(key string) (string, error) {
	if v, ok := s.lookup(key); ok {
		return v, nil
	}
	return "", &MissingKeyError{Key: key, Files: s.files, Prefix: s.prefix}
}

// GetInt returns an integer value, falling back to def when absent or
// malformed.
func (s *Settings) GetInt(key string, def int) int {
	v, ok := s.lookup(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// GetBool returns a boolean value, falling back to def when absent or
// malformed.
func (s *Settings) GetBool(key string, def bool) bool {
	v, ok := s.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Debug reports whether the application runs in debug mode (key DEBUG,
// default true — set <PREFIX>_DEBUG=false in production).
func (s *Settings) Debug() bool { return s.GetBool("DEBUG", true) }

// Version returns the application version (key VERSION).
func (s *Settings) Version() string { return s.Get("VERSION", "0.1.0") }

// Prefix returns the env-var prefix in use.
func (s *Settings) Prefix() string { return s.prefix }

func (s *Settings) lookup(key string) (string, bool) {
	key = strings.ToUpper(key)
	if v := os.Getenv(s.prefix + "_" + key); v != "" {
		return v, true
	}
	if v, ok := s.Payload()[key]; ok {
		return v, true
	}
	return "", false
}

// ── Errors ───────────────────────────────────────────────────────────────────

// MissingKeyError names a required setting that could not be found, with
// hints on how to supply it.
type MissingKeyError struct {
	Key    string
	Files  []string
	Prefix string
}

func (e *MissingKeyError) Error() string {
	key := strings.ToUpper(e.Key)
	return fmt.Sprintf(
		"config: setting %q not found.\n"+
			"Please check the following:\n"+
			"1. The setting is defined in one of these files: %s\n"+
			"\tExample: %s=value\n"+
			"2. If it is an environment variable, ensure it is prefixed with %q\n"+
			"\tExample: export %s_%s=value\n"+
			"3. Check for typos in the setting name\n"+
			"If the setting is optional, use Get() with a default value instead.",
		key, strings.Join(e.Files, ", "), key, e.Prefix+"_", e.Prefix, key)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
