// Package ghost is the boundary layer over a text-generation inference
// engine: load a model into a Context, tune generation parameters, run
// Generate with an optional streaming token callback, read the resulting
// Response, and release both handles. It is structured into small files by
// concern:
//
//   - engine.go: Engine/Session interfaces the backend must satisfy.
//   - config.go: validated generation parameters, defaults and ceilings.
//   - context.go: Context lifecycle (Load, Release) and the in-flight guard.
//   - generate.go: Generate entry point and the streaming protocol.
//   - response.go: caller-owned Response handle and accessors.
//   - errors.go: ErrorKind enumeration, GenError, Is* helpers.
//   - events.go: lifecycle event publishing (noop and in-memory).
//   - metrics.go: Prometheus instrumentation for generations.
//   - logging.go: optional structured logger installation.
//   - sanity.go: runtime report on compiled-in backend support.
//
// Build tags and runtimes:
//
//   - In-process llama: uses the go-llama.cpp engine. Enabled with
//     `-tags=llama`. Files: adapter_llama.go, llama_cgo.go (linker rpath
//     hints). A no-CGO stub compiles when the tag is not set:
//     adapter_llama_stub.go. The stub fails fast rather than mocking.
//
// Each Context is exclusively owned by the caller that created it: one
// Generate at a time, configuration settled before Generate starts. The
// package guards the Context with a non-reentrant in-flight slot and fails
// fast (KindBusy) instead of corrupting state if that discipline is violated.
package ghost
