package ghost

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// createModelFile writes a small stand-in model file and returns its path.
func createModelFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("gguf"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return p
}

// fakeEngine is a deterministic in-memory backend for tests.
type fakeEngine struct {
	loadErr   error
	tokens    []string
	genErr    error
	failAfter int           // tokens to emit before genErr fires
	block     chan struct{} // when set, Generate waits on it (or ctx) before emitting

	mu         sync.Mutex
	loads      int
	closes     int
	lastParams GenParams
}

func (e *fakeEngine) Load(modelPath string, params EngineParams) (Session, error) {
	e.mu.Lock()
	e.loads++
	e.mu.Unlock()
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	return &fakeSession{eng: e}, nil
}

func (e *fakeEngine) loadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loads
}

func (e *fakeEngine) closeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closes
}

func (e *fakeEngine) params() GenParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastParams
}

type fakeSession struct {
	eng *fakeEngine
}

func (s *fakeSession) Generate(ctx context.Context, prompt string, params GenParams, onToken func(string) error) (Result, error) {
	e := s.eng
	e.mu.Lock()
	e.lastParams = params
	e.mu.Unlock()

	if e.block != nil {
		select {
		case <-e.block:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	var b strings.Builder
	emitted := 0
	for _, tok := range e.tokens {
		if emitted >= params.MaxTokens {
			break
		}
		if e.genErr != nil && emitted >= e.failAfter {
			return Result{}, e.genErr
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}
		if err := onToken(tok); err != nil {
			return Result{}, err
		}
		b.WriteString(tok)
		emitted++
	}
	if e.genErr != nil && emitted >= e.failAfter {
		return Result{}, e.genErr
	}
	return Result{Text: b.String(), TokensUsed: emitted}, nil
}

func (s *fakeSession) Close() error {
	s.eng.mu.Lock()
	s.eng.closes++
	s.eng.mu.Unlock()
	return nil
}

// loadTestContext wires a Context over the fake engine with a temp model file.
func loadTestContext(t *testing.T, eng *fakeEngine, opts Options) *Context {
	t.Helper()
	c, err := LoadWithOptions(eng, createModelFile(t, "m.gguf"), opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return c
}
