package ghost

import "errors"

// ErrorKind is the closed set of failure kinds a Response can carry.
// Zero means success; the values are stable and safe to persist or compare.
type ErrorKind int32

const (
	KindOK ErrorKind = iota
	KindInvalidInput
	KindBusy
	KindBackendFailure
	KindResourceExhausted
)

// String returns a short stable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindInvalidInput:
		return "invalid_input"
	case KindBusy:
		return "busy"
	case KindBackendFailure:
		return "backend_failure"
	case KindResourceExhausted:
		return "resource_exhausted"
	default:
		return "unknown"
	}
}

// GenError carries a failure kind plus an optional wrapped cause.
type GenError struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e *GenError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *GenError) Unwrap() error { return e.cause }

// Is lets errors.Is match two GenErrors by kind.
func (e *GenError) Is(target error) bool {
	t, ok := target.(*GenError)
	return ok && t.Kind == e.Kind
}

func genErr(kind ErrorKind, msg string, cause error) *GenError {
	return &GenError{Kind: kind, msg: msg, cause: cause}
}

// IsInvalidInput reports whether err carries KindInvalidInput.
func IsInvalidInput(err error) bool { return kindOf(err) == KindInvalidInput }

// IsBusy reports whether err indicates the Context already had a generation
// in flight.
func IsBusy(err error) bool { return kindOf(err) == KindBusy }

// IsBackendFailure reports whether err carries KindBackendFailure.
func IsBackendFailure(err error) bool { return kindOf(err) == KindBackendFailure }

// IsResourceExhausted reports whether err carries KindResourceExhausted.
func IsResourceExhausted(err error) bool { return kindOf(err) == KindResourceExhausted }

func kindOf(err error) ErrorKind {
	var ge *GenError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindOK
}

// ErrUnavailable signals that the backend is not compiled into this binary
// (missing build tag) or otherwise cannot run. Load fails fast with it
// instead of mocking inference.
var ErrUnavailable = errors.New("inference backend unavailable")

// ErrContextReleased is the cause wrapped into a backend failure when a
// Context is torn down while a Generate is in flight.
var ErrContextReleased = errors.New("context released")
