package engine

import "errors"

// Sentinel errors, matching the kinds enumerated in spec.md §7.
var (
	// ErrInvalidLifecycleTransition is returned when a caller invokes an
	// operation the current state does not permit. Fatal for the caller;
	// the engine's state is left unchanged.
	ErrInvalidLifecycleTransition = errors.New("engine: invalid lifecycle transition")

	// ErrModuleConflict is returned when loading a module would activate a
	// declared conflict with an already-loaded module.
	ErrModuleConflict = errors.New("engine: module conflict")

	// ErrModuleDependencyCycle is returned when a module's dependency
	// graph contains a cycle.
	ErrModuleDependencyCycle = errors.New("engine: module dependency cycle")

	// ErrModuleNotFound is returned by unload/run-command style lookups.
	ErrModuleNotFound = errors.New("engine: module not found")

	// ErrModuleStillDepended is returned by unload-module when other
	// loaded modules still depend on it and recursive=false.
	ErrModuleStillDepended = errors.New("engine: module still has dependants")

	// ErrCommandNotFound is returned by run-command for an unregistered
	// command name.
	ErrCommandNotFound = errors.New("engine: command not found")

	// ErrUnknownAgent is returned by destroy-agent for an unregistered
	// agent id.
	ErrUnknownAgent = errors.New("engine: unknown agent")
)
