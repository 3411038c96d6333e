package ghost

// SanityReport describes whether a real inference backend is compiled in.
type SanityReport struct {
	LlamaBuilt bool   `json:"llama_built"`
	Error      string `json:"error,omitempty"`
}

// SanityCheck reports backend availability. It does not mutate state and is
// safe to call at any time.
func SanityCheck() SanityReport {
	r := SanityReport{LlamaBuilt: llamaBuilt}
	if !llamaBuilt {
		r.Error = "llama support not built (missing 'llama' build tag)"
	}
	return r
}
