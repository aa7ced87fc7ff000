package lifecycle

import (
	"errors"
	"fmt"
	"sync"
)

// ── Manager ──────────────────────────────────────────────────────────────────

// Manager owns the dependency graph, the instance cache, and the
// registration entries. It orchestrates lazy memoized construction, ordered
// startup, and reverse-ordered shutdown.
//
// There is deliberately no process-wide default manager: create one with New
// and pass it through your application's wiring, so tests can run isolated
// managers side by side.
//
//	m := lifecycle.New()
//
//	m.Register(lifecycle.Registration{
//	    ID: "Config",
//	    Construct: func(lifecycle.Deps) (lifecycle.Object, error) { return &Config{}, nil },
//	})
//	m.Register(lifecycle.Registration{
//	    ID:           "APIClient",
//	    Dependencies: []lifecycle.ID{"Config"},
//	    Construct: func(deps lifecycle.Deps) (lifecycle.Object, error) {
//	        return NewAPIClient(deps["config"].(*Config)), nil
//	    },
//	})
//
//	m.Startup()                     // Config before APIClient, each exactly once
//	cl, _ := lifecycle.Resolve[*APIClient](m, "APIClient")
//	m.Shutdown()                    // APIClient torn down before Config
type Manager struct {
	mu      sync.Mutex
	entries map[ID]*entry
	graph   *graph
	frozen  bool
}

// entry pairs a registration with its cache slot. A nil instance means
// registered-but-pending.
type entry struct {
	reg      Registration
	name     string // resolved injection name
	instance Object
}

// New creates an empty manager.
func New() *Manager {
	return &Manager{
		entries: make(map[ID]*entry),
		graph:   newGraph(),
	}
}

// ── Registration ─────────────────────────────────────────────────────────────

// Register stores a registration and threads its dependency edges into the
// graph. It fails with ErrCircularDependency if the edges would close a
// cycle, and with ErrConfiguration for a duplicate or malformed registration
// or once the manager is frozen; on any failure nothing is left partially
// visible.
//
// Registrations are frozen by the first Startup call: the set of objects is
// part of the application's bootstrap, not something to grow at runtime.
func (m *Manager) Register(reg Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return &ConfigurationError{ID: reg.ID, Reason: "cannot register after Startup has run"}
	}
	if reg.ID == "" {
		return &ConfigurationError{Reason: "registration needs a non-empty ID"}
	}
	if reg.Construct == nil {
		return &ConfigurationError{ID: reg.ID, Reason: "registration needs a constructor"}
	}
	if _, ok := m.entries[reg.ID]; ok {
		return &ConfigurationError{ID: reg.ID, Reason: "already registered"}
	}

	// The graph rolls its own additions back when the check fails.
	if err := m.graph.register(reg.ID, reg.Dependencies); err != nil {
		return err
	}

	name := reg.Name
	if name == "" {
		name = snakeName(reg.ID)
	}
	m.entries[reg.ID] = &entry{reg: reg, name: name}
	return nil
}

// Registered reports whether id has a registration entry.
func (m *Manager) Registered(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[id]
	return ok
}

// Resolved reports whether id currently holds a constructed instance.
func (m *Manager) Resolved(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return ok && e.instance != nil
}

// IDs returns every registered ID in registration order.
func (m *Manager) IDs() []ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ID, 0, len(m.entries))
	for _, id := range m.graph.order {
		if _, ok := m.entries[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Get returns the instance for id, constructing it (and, recursively, its
// unresolved dependencies) on first access and memoizing the result. For a
// registration carrying an Accessor, the accessor's result is returned
// instead of the raw instance.
//
// A failed construction is not cached: the slot stays pending and the next
// Get retries from scratch.
func (m *Manager) Get(id ID) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, err := m.resolve(id)
	if err != nil {
		return nil, err
	}
	if acc := m.entries[id].reg.Accessor; acc != nil {
		return acc(obj), nil
	}
	return obj, nil
}

// Instance is Get without the Accessor indirection: it always returns the
// raw cached Object.
func (m *Manager) Instance(id ID) (Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolve(id)
}

// resolve performs the recursive lazy resolution for id. The caller holds
// m.mu, so concurrent first access constructs each id at most once.
func (m *Manager) resolve(id ID) (Object, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, &NotRegisteredError{ID: id}
	}
	if e.instance != nil {
		return e.instance, nil
	}

	deps := make(Deps, len(e.reg.Dependencies))
	for _, depID := range e.reg.Dependencies {
		inst, err := m.resolve(depID)
		if err != nil {
			return nil, err
		}
		de := m.entries[depID]
		if de.reg.NonInjectable {
			continue
		}
		deps[de.name] = inst
	}

	obj, err := e.reg.Construct(deps)
	if err != nil {
		return nil, &InstantiationError{ID: id, Cause: err}
	}
	if obj == nil {
		return nil, &ContractViolationError{ID: id, Reason: "constructor returned a nil object"}
	}
	if err := obj.Setup(); err != nil {
		if errors.Is(err, ErrContractViolation) {
			return nil, &ContractViolationError{ID: id, Reason: err.Error()}
		}
		return nil, &InstantiationError{ID: id, Cause: err}
	}

	e.instance = obj
	return obj, nil
}

// ── Startup / Shutdown ───────────────────────────────────────────────────────

// Startup resolves every registered object in topological order, so each
// object's dependencies are constructed and set up strictly before it is.
// Already-resolved entries are left alone, which makes repeated Startup
// calls idempotent. It freezes registration and aborts at the first failure,
// leaving earlier objects cached and later ones pending.
func (m *Manager) Startup() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen = true
	for _, id := range m.graph.topological() {
		if _, err := m.resolve(id); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown tears down every constructed instance in reverse topological
// order — the exact reverse of construction order — and resets each slot to
// pending. Entries already pending are skipped, so a second Shutdown is a
// no-op. A teardown failure aborts the sweep with that entry still cached.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.graph.reverseTopological() {
		e, ok := m.entries[id]
		if !ok || e.instance == nil {
			continue
		}
		if err := e.instance.Teardown(); err != nil {
			return fmt.Errorf("lifecycle: teardown of %q: %w", id, err)
		}
		e.instance = nil
	}
	return nil
}

// ── Injection glue ───────────────────────────────────────────────────────────

// AsInjectable adapts id into a zero-argument accessor for a request-handling
// framework's dependency hook. Resolution happens at call time, so wiring a
// route before Startup is safe.
func (m *Manager) AsInjectable(id ID) func() (any, error) {
	return func() (any, error) { return m.Get(id) }
}

// ── Generics helpers ─────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result.
//
//	store, err := lifecycle.Resolve[*database.Store](m, database.ID)
func Resolve[T any](m *Manager, id ID) (T, error) {
	var zero T
	v, err := m.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("lifecycle: Resolve[%T]: %q resolved to %T", zero, id, v)
	}
	return typed, nil
}

// Injectable is the typed variant of AsInjectable.
func Injectable[T any](m *Manager, id ID) func() (T, error) {
	return func() (T, error) { return Resolve[T](m, id) }
}
