// Package lifecycle manages a set of singleton service objects: the
// dependency edges between them, lazy memoized construction, ordered
// startup, and reverse-ordered shutdown.
//
// # Overview
//
// Applications hold a handful of process-wide objects — settings, a logger,
// database and cache clients — that must be built in dependency order,
// shared everywhere, and released in reverse order on exit. The manager
// tracks those objects as a dependency graph and turns the wiring mistakes
// that usually surface as confusing runtime bugs (cycles, missing
// registrations, failed construction) into errors at registration or
// resolution time.
//
// # Lifecycle
//
//  1. Bootstrap: Register every object with its dependency list. A
//     registration that would make the graph cyclic is rejected on the spot.
//  2. Startup: walks a deterministic topological order and constructs each
//     object exactly once, dependencies first, calling Setup on each.
//  3. Serve: Get / Resolve return the memoized instances; AsInjectable wires
//     them into HTTP handlers.
//  4. Shutdown: Teardown in reverse construction order.
//
// # Objects
//
// Anything implementing Object (Setup/Teardown) can be registered. The
// injection name a dependent sees defaults to the ID in snake_case; set
// Registration.Name to override it, or Registration.NonInjectable for
// objects that only need ordering (a logger reached through its own
// accessor, for example).
//
// # Proxies
//
// Proxy wraps a third-party value — a redis client, an *sql.DB — so it can
// be registered like any other object. Its payload slot is populated during
// Setup and reached through the explicit Payload accessor.
//
// # Errors
//
// All failures match one of the package sentinels with errors.Is:
// ErrCircularDependency, ErrNotRegistered, ErrInstantiationFailed,
// ErrContractViolation, ErrConfiguration.
package lifecycle
