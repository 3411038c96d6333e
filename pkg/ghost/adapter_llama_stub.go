//go:build !llama

package ghost

// This file provides a no-CGO stub for the llama engine. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real engine lives in adapter_llama.go (tagged 'llama').

// llamaBuilt indicates this binary was compiled without real llama support.
var llamaBuilt = false

// llamaEngine is a stub that satisfies Engine but refuses to load models
// without the 'llama' build tag. This avoids any mocked inference in
// binaries built without CGO support.
type llamaEngine struct{}

// NewLlamaEngine returns the stub Engine; Load fails fast with ErrUnavailable.
func NewLlamaEngine() Engine { return &llamaEngine{} }

func (e *llamaEngine) Load(modelPath string, params EngineParams) (Session, error) {
	return nil, genErr(KindResourceExhausted, "llama support not built (missing 'llama' build tag)", ErrUnavailable)
}
