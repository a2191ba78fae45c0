// Package trace provides a tracing subsystem for the Ember compiler.
//
// Trace is the compiler's logging layer: every pass boundary, every
// file and every function instantiation can be reported as an event.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	ember build --trace=- --trace-level=detail main.em
//
// # Architecture
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including instantiation cache hits
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
