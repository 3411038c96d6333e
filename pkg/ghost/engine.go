package ghost

import "context"

// Engine abstracts the model backend driven by a Context.
// Concrete implementations (e.g., llama.cpp) should satisfy this interface.
type Engine interface {
	// Load prepares a session for the model at modelPath. The returned
	// Session owns the backend resources until Close.
	Load(modelPath string, params EngineParams) (Session, error)
}

// Session represents one loaded model instance (the backend half of a Context).
type Session interface {
	// Generate streams tokens for the given prompt. The onToken callback is
	// invoked once per token, in production order, before the next token is
	// produced. Implementations must return when ctx is canceled and must
	// never invoke onToken concurrently.
	Generate(ctx context.Context, prompt string, params GenParams, onToken func(string) error) (Result, error)
	// Close releases backend resources. Called exactly once, by Context.Release.
	Close() error
}

// EngineParams captures backend tunables fixed at load time.
type EngineParams struct {
	CtxSize int
	Threads int
}

// GenParams captures per-call generation parameters handed to the backend.
type GenParams struct {
	MaxTokens   int
	Temperature float32
}

// Result summarizes one generation after streaming completes.
type Result struct {
	Text       string
	TokensUsed int
}
