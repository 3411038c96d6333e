package ghost

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TokenFunc receives one token per invocation, synchronously and in
// production order. The token string is only guaranteed meaningful for the
// duration of the call at the boundary contract level; in Go it is an
// immutable string the callback may retain freely.
type TokenFunc func(token string)

// Generate runs one generation against the Context's current Config and
// returns a caller-owned Response. It always returns a non-nil Response;
// failures are carried as the Response's ErrorCode:
//
//   - KindInvalidInput: released Context or empty prompt.
//   - KindBusy: another Generate already in flight on this Context.
//   - KindBackendFailure / KindResourceExhausted: engine fault; partial
//     output is discarded per the Response invariant.
//
// Generate blocks until the Response is ready; streaming happens through
// synchronous onToken invocations nested inside the call. onToken may be nil.
func (c *Context) Generate(ctx context.Context, prompt string, onToken TokenFunc) *Response {
	if c.released.Load() {
		return c.fail(KindInvalidInput, genErr(KindInvalidInput, "generate on released context", nil))
	}
	if prompt == "" {
		return c.fail(KindInvalidInput, genErr(KindInvalidInput, "empty prompt", nil))
	}

	// Non-reentrant guard: fail fast instead of corrupting backend state when
	// the caller violates the one-generation-at-a-time contract.
	select {
	case c.genCh <- struct{}{}:
	default:
		return c.fail(KindBusy, genErr(KindBusy, "generation already in flight", nil))
	}
	defer func() { <-c.genCh }()

	if c.released.Load() {
		return c.fail(KindInvalidInput, genErr(KindInvalidInput, "generate on released context", nil))
	}

	cfg := c.ConfigSnapshot()
	genCtx, cancel := joinContext(ctx, c.teardown)
	defer cancel()

	start := time.Now()
	c.pub.Publish(Event{Name: "generate_start", ContextID: c.id, Fields: map[string]any{"prompt_len": len(prompt)}})

	var acc strings.Builder
	tokens := 0
	var cbErr error
	forward := func(tok string) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = genErr(KindBackendFailure, fmt.Sprintf("token callback panic: %v", r), nil)
				cbErr = err
			}
		}()
		if onToken != nil {
			onToken(tok)
		}
		acc.WriteString(tok)
		tokens++
		tokensStreamedTotal.Inc()
		return nil
	}

	res, err := c.sess.Generate(genCtx, prompt, cfg.genParams(), forward)
	if err == nil && cbErr != nil {
		// Some backends stop cleanly when the callback errors; the failure
		// still belongs to this generation.
		err = cbErr
	}
	if err != nil {
		kind := KindBackendFailure
		if k := kindOf(err); k != KindOK {
			kind = k
		}
		cause := err
		if errors.Is(genCtx.Err(), context.Canceled) && c.released.Load() {
			cause = fmt.Errorf("%w: %w", ErrContextReleased, err)
		}
		c.log.Error().Err(cause).Str("kind", kind.String()).Msg("generation failed")
		c.pub.Publish(Event{Name: "generate_error", ContextID: c.id, Fields: map[string]any{"kind": kind.String()}})
		return c.fail(kind, genErr(kind, "generation failed", cause))
	}

	text := res.Text
	if text == "" {
		text = acc.String()
	}
	used := res.TokensUsed
	if used == 0 {
		used = tokens
	}

	dur := time.Since(start)
	generationsTotal.WithLabelValues("ok").Inc()
	generationDuration.Observe(dur.Seconds())
	c.log.Info().Int("tokens", used).Dur("took", dur).Msg("generation done")
	c.pub.Publish(Event{Name: "generate_done", ContextID: c.id, Fields: map[string]any{"tokens": used}})

	return &Response{text: text, tokensUsed: used, code: KindOK}
}

// fail builds the zeroed failure Response mandated by the Response invariant.
func (c *Context) fail(kind ErrorKind, err *GenError) *Response {
	generationsTotal.WithLabelValues(kind.String()).Inc()
	return &Response{code: kind, err: err}
}

// joinContext derives a context canceled when either the parent is done or
// the teardown channel closes. The cancel func must be called to release the
// goroutine when the generation ends.
func joinContext(parent context.Context, teardown <-chan struct{}) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-teardown:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
