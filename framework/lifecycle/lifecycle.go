package lifecycle

import (
	"strings"
	"unicode"
)

// ── Object contract ──────────────────────────────────────────────────────────

// Object is the capability set every registrable type must satisfy.
//
// Setup makes the instance usable (open connections, load configuration, …).
// The manager guarantees it is invoked exactly once per construction.
// Teardown releases resources; the manager calls it exactly once per
// constructed instance, during Shutdown.
type Object interface {
	Setup() error
	Teardown() error
}

// ── Registration ─────────────────────────────────────────────────────────────

// ID identifies a registered kind. It is used as a graph node and as the
// instance-cache key, and is fixed at registration time.
type ID string

// Deps is the named-dependency map handed to a Constructor: each injectable
// dependency's instance, keyed by its injection name.
type Deps map[string]Object

// Constructor builds an instance from its resolved dependencies.
type Constructor func(deps Deps) (Object, error)

// Registration describes one registrable kind. It is stored once, at
// registration, and never mutated afterwards.
type Registration struct {
	// ID is the unique identity of this kind. Required.
	ID ID

	// Dependencies lists the IDs this kind depends on, in the order their
	// instances should be resolved.
	Dependencies []ID

	// Construct is the factory invoked with the named-dependency map once
	// every dependency is resolved and set up. Required.
	Construct Constructor

	// Name overrides the injection name under which this kind's instance
	// appears in a dependent's Deps. Empty means the default policy:
	// the ID converted from CamelCase to snake_case.
	Name string

	// NonInjectable marks a kind that participates in the graph for
	// ordering only and is never added to a dependent's Deps. Used for
	// objects reached through a different access path, such as the logger.
	NonInjectable bool

	// Accessor, when set, indirects Get: instead of the raw instance, Get
	// (and AsInjectable) return the accessor's result. Lets a registration
	// hand out a view of the instance rather than the instance itself.
	Accessor func(Object) any
}

// ── Naming ───────────────────────────────────────────────────────────────────

// snakeName converts a CamelCase ID to its default injection name:
// an underscore before every interior uppercase letter, all lowered.
// "AppSettings" → "app_settings".
func snakeName(id ID) string {
	var b strings.Builder
	b.Grow(len(id) + 4)
	for i, r := range string(id) {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
