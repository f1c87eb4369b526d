// Package trace provides a tracing subsystem for the meta runtime.
//
// The trace package enables tracking of registry bootstrap, memory backend
// traffic, and per-call dispatch to help diagnose performance issues and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	metacli bench --trace=- --trace-level=phase
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer singleton used when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Session and registry boundaries
//   - LevelDetail: Memory-backend level events
//   - LevelDebug: Everything including per-call dispatch
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeSession: Top-level CLI operations
//   - ScopeRegistry: Registry-wide bookkeeping (Register, Find, table rebuilds)
//   - ScopeMemory: Per-type Pool/Heap allocation traffic
//   - ScopeDispatch: Per-call operator/constructor dispatch
//
// # Context Propagation
//
// Tracers are propagated through the call stack via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeRegistry, "register:Vector3", parentID)
//	defer span.End("")
package trace
