//go:build !llama

package ghost

import "testing"

func TestSanityCheckWithoutLlama(t *testing.T) {
	r := SanityCheck()
	if r.LlamaBuilt {
		t.Fatalf("stub build must report llama as not built")
	}
	if r.Error == "" {
		t.Fatalf("expected explanatory error in stub build")
	}
}

func TestStubEngineFailsFast(t *testing.T) {
	eng := NewLlamaEngine()
	sess, err := eng.Load(createModelFile(t, "m.gguf"), EngineParams{})
	if err == nil || sess != nil {
		t.Fatalf("stub engine must refuse to load, got %v, %v", sess, err)
	}
	if !IsResourceExhausted(err) {
		t.Fatalf("expected resource exhausted kind, got %v", err)
	}
}
