package ghost

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options tunes Context construction. The zero value means: default Config,
// backend-chosen engine params, no logging, no event publishing.
type Options struct {
	Config    *Config
	Engine    EngineParams
	Logger    *zerolog.Logger
	Publisher EventPublisher
}

// Context owns one loaded model instance plus its current Config. It is
// exclusively owned by the caller that created it: serialize Generate calls
// and call Release exactly once. Distinct Contexts are fully independent.
type Context struct {
	id   string
	sess Session

	cfgMu sync.Mutex
	cfg   Config

	genCh    chan struct{} // size 1: single in-flight generation
	released atomic.Bool
	teardown chan struct{} // closed by Release; aborts in-flight generation

	log zerolog.Logger
	pub EventPublisher
}

// Load validates modelPath, drives the engine to load the model, and returns
// a live Context with default Config. On any failure no Context is returned.
func Load(eng Engine, modelPath string) (*Context, error) {
	return LoadWithOptions(eng, modelPath, Options{})
}

// LoadWithOptions is Load with an initial Config and construction tunables.
// A non-nil Options.Config is validated in full before the engine is touched.
func LoadWithOptions(eng Engine, modelPath string, opts Options) (*Context, error) {
	if eng == nil {
		return nil, genErr(KindInvalidInput, "nil engine", nil)
	}
	path := strings.TrimSpace(modelPath)
	if path == "" {
		return nil, genErr(KindInvalidInput, "empty model path", nil)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, genErr(KindInvalidInput, "model path not resolvable", err)
	}
	if fi.IsDir() {
		return nil, genErr(KindInvalidInput, "model path is a directory", nil)
	}

	cfg := DefaultConfig()
	if opts.Config != nil {
		if err := opts.Config.Validate(); err != nil {
			return nil, err
		}
		cfg = *opts.Config
	}

	sess, err := eng.Load(path, opts.Engine)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}

	c := &Context{
		id:       uuid.NewString(),
		sess:     sess,
		cfg:      cfg,
		genCh:    make(chan struct{}, 1),
		teardown: make(chan struct{}),
		pub:      opts.Publisher,
	}
	if c.pub == nil {
		c.pub = noopPublisher{}
	}
	logger := baseLogger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	c.log = logger.With().Str("ctx", c.id).Logger()

	contextsLive.Inc()
	c.log.Info().Str("model", path).Uint32("max_tokens", cfg.MaxTokens).Msg("context loaded")
	c.pub.Publish(Event{Name: "context_load", ContextID: c.id, Fields: map[string]any{"model": path}})
	return c, nil
}

// ID returns the Context's stable identity used in logs and events.
func (c *Context) ID() string { return c.id }

// Live reports whether the Context has not been released.
func (c *Context) Live() bool { return !c.released.Load() }

// SetMaxTokens replaces the max-tokens parameter. Zero or a value above
// MaxTokensCeiling is rejected leaving the prior Config unchanged.
func (c *Context) SetMaxTokens(v uint32) error {
	if c.released.Load() {
		return genErr(KindInvalidInput, "context released", nil)
	}
	if err := validateMaxTokens(v); err != nil {
		return err
	}
	c.cfgMu.Lock()
	c.cfg.MaxTokens = v
	c.cfgMu.Unlock()
	return nil
}

// SetTemperature replaces the sampling temperature. Non-finite values or
// values outside [0, TemperatureMax] are rejected leaving the prior Config
// unchanged.
func (c *Context) SetTemperature(t float32) error {
	if c.released.Load() {
		return genErr(KindInvalidInput, "context released", nil)
	}
	if err := validateTemperature(t); err != nil {
		return err
	}
	c.cfgMu.Lock()
	c.cfg.Temperature = t
	c.cfgMu.Unlock()
	return nil
}

// SetConfig replaces the whole parameter set, all or nothing.
func (c *Context) SetConfig(cfg Config) error {
	if c.released.Load() {
		return genErr(KindInvalidInput, "context released", nil)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfgMu.Lock()
	c.cfg = cfg
	c.cfgMu.Unlock()
	return nil
}

// ConfigSnapshot returns the current parameter set.
func (c *Context) ConfigSnapshot() Config {
	c.cfgMu.Lock()
	defer c.cfgMu.Unlock()
	return c.cfg
}

// Release tears the Context down: any in-flight Generate is aborted and
// drained, then backend resources are freed. Calling Release twice is a
// contract violation and panics. Other operations on a released Context fail
// with KindInvalidInput instead of panicking.
func (c *Context) Release() error {
	if c.released.Swap(true) {
		panic("ghost: Context released twice")
	}
	close(c.teardown)

	// Acquire the in-flight slot so the backend is not freed under a running
	// generation. The teardown channel makes that generation fail promptly.
	c.genCh <- struct{}{}
	err := c.sess.Close()
	<-c.genCh

	contextsLive.Dec()
	c.log.Info().Msg("context released")
	c.pub.Publish(Event{Name: "context_release", ContextID: c.id, Fields: map[string]any{}})
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
