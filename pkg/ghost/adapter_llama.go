//go:build llama

package ghost

import (
	"context"
	"errors"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaEngine loads models in-process through go-llama.cpp.
type llamaEngine struct{}

// NewLlamaEngine returns the in-process llama.cpp Engine.
func NewLlamaEngine() Engine { return &llamaEngine{} }

// llamaSession owns one loaded model.
type llamaSession struct {
	model   *llama.LLama
	threads int
}

func (e *llamaEngine) Load(modelPath string, params EngineParams) (Session, error) {
	mo := []llama.ModelOption{}
	if params.CtxSize > 0 {
		mo = append(mo, llama.SetContext(params.CtxSize))
	}
	m, err := llama.New(modelPath, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaSession{model: m, threads: params.Threads}, nil
}

func (s *llamaSession) Generate(ctx context.Context, prompt string, params GenParams, onToken func(string) error) (Result, error) {
	if s.model == nil {
		return Result{}, errors.New("llama model not initialized")
	}

	// Bridge token streaming to onToken and respect cancellation.
	count := 0
	s.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if err := onToken(tok); err != nil {
			return false
		}
		count++
		return true
	})

	po := []llama.PredictOption{
		llama.SetTokens(maxInt(1, params.MaxTokens)),
		llama.SetTemperature(params.Temperature),
	}
	if s.threads > 0 {
		po = append(po, llama.SetThreads(s.threads))
	}
	text, err := s.model.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, err
	}
	if ctx.Err() != nil {
		// Predict returned cleanly because the callback aborted it.
		return Result{}, ctx.Err()
	}
	return Result{Text: text, TokensUsed: count}, nil
}

func (s *llamaSession) Close() error {
	if s.model != nil {
		s.model.Free()
		s.model = nil
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
