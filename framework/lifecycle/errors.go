package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel values for errors.Is checks. The typed errors below carry the
// details; each one matches its sentinel.
var (
	// ErrNotRegistered is returned when Get, Startup, or Shutdown references
	// an ID that has no registration.
	ErrNotRegistered = errors.New("object not registered")

	// ErrCircularDependency is returned when a registration would make the
	// dependency graph cyclic. The registration is rejected and the graph is
	// left exactly as it was.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInstantiationFailed is returned when an object's constructor or
	// Setup fails. The underlying cause is wrapped.
	ErrInstantiationFailed = errors.New("instantiation failed")

	// ErrContractViolation is returned when Setup completes without leaving
	// the object usable — for a Proxy, when the payload slot is still empty.
	ErrContractViolation = errors.New("lifecycle contract violated")

	// ErrConfiguration is returned for invalid registrations: a missing
	// constructor, a duplicate ID, or registering after Startup froze the
	// manager.
	ErrConfiguration = errors.New("invalid lifecycle configuration")
)

// NotRegisteredError reports a resolution of an unknown ID.
type NotRegisteredError struct {
	ID ID
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("lifecycle: %q is not registered. Did you forget to call Register() during bootstrap?", e.ID)
}

func (e *NotRegisteredError) Is(target error) bool { return target == ErrNotRegistered }

// CircularDependencyError reports a rejected registration, including the
// cycle that it would have introduced.
type CircularDependencyError struct {
	ID   ID   // the registration that was rejected
	Path []ID // one cycle through the offending edges, first node repeated last
}

func (e *CircularDependencyError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("lifecycle: registering %q would create a circular dependency", e.ID)
	}
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = string(id)
	}
	return fmt.Sprintf("lifecycle: registering %q would create a circular dependency: %s",
		e.ID, strings.Join(parts, " -> "))
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// InstantiationError wraps a failed constructor or Setup call.
type InstantiationError struct {
	ID    ID
	Cause error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("lifecycle: failed to instantiate %q: %v", e.ID, e.Cause)
}

func (e *InstantiationError) Unwrap() error { return e.Cause }

func (e *InstantiationError) Is(target error) bool { return target == ErrInstantiationFailed }

// ContractViolationError reports an object whose Setup returned without
// producing a usable instance.
type ContractViolationError struct {
	ID     ID
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("lifecycle: %q violated the object contract: %s", e.ID, e.Reason)
}

func (e *ContractViolationError) Is(target error) bool { return target == ErrContractViolation }

// ConfigurationError reports an invalid registration.
type ConfigurationError struct {
	ID     ID
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("lifecycle: %s", e.Reason)
	}
	return fmt.Sprintf("lifecycle: %q: %s", e.ID, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
