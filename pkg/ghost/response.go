package ghost

import "sync/atomic"

// Response is the caller-owned result of one Generate call. It is immutable
// once produced; the package retains no reference after returning it. A
// Response with a non-zero ErrorCode carries no text and zero tokens used.
//
// Release frees the Response exactly once. Using a Response after Release,
// or releasing it twice, is a contract violation and panics.
type Response struct {
	text       string
	tokensUsed int
	code       ErrorKind
	err        *GenError
	released   atomic.Bool
}

// Text returns the generated text. Empty when ErrorCode is non-zero.
func (r *Response) Text() string {
	r.check("Text")
	return r.text
}

// TokensUsed returns the number of tokens produced for this generation.
func (r *Response) TokensUsed() int {
	r.check("TokensUsed")
	return r.tokensUsed
}

// ErrorCode returns the failure kind; KindOK means success.
func (r *Response) ErrorCode() ErrorKind {
	r.check("ErrorCode")
	return r.code
}

// Ok reports whether the generation succeeded.
func (r *Response) Ok() bool {
	r.check("Ok")
	return r.code == KindOK
}

// Err returns nil on success, or the GenError describing the failure.
func (r *Response) Err() error {
	r.check("Err")
	if r.err == nil {
		return nil
	}
	return r.err
}

// Release frees the Response's owned text. Exactly-once contract.
func (r *Response) Release() {
	if r.released.Swap(true) {
		panic("ghost: Response released twice")
	}
	r.text = ""
	r.err = nil
}

func (r *Response) check(op string) {
	if r.released.Load() {
		panic("ghost: Response used after Release: " + op)
	}
}
