package checkout

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

const msgMountFailed = "Checkout could not be displayed"

// Mounter displays and removes the embedded checkout widget.
type Mounter interface {
	Mount(publishableKey, clientSecret string) error
	Unmount()
}

// Navigator sends the browser to a hosted checkout page.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(url string)

func (f NavigatorFunc) Navigate(url string) { f(url) }

type Option func(*Controller)

func WithMounter(m Mounter) Option {
	return func(c *Controller) { c.mounter = m }
}

func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.navigator = n }
}

// WithStateListener registers fn to receive every state change in order.
func WithStateListener(fn func(State)) Option {
	return func(c *Controller) { c.listener = fn }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// Controller drives one checkout overlay. At most one acquisition is in
// flight; results that arrive after Close or a newer Open are dropped.
//
// Mounter, Navigator and the state listener are called without the state
// lock held but must not call Open, Retry or Close themselves.
type Controller struct {
	cfg       ClientConfig
	acquirer  Acquirer
	mounter   Mounter
	navigator Navigator
	listener  func(State)
	logger    *zap.Logger

	// effects serializes transitions with their side effects so a mount can
	// never land after the Close that superseded it.
	effects sync.Mutex
	mu      sync.Mutex
	state   State
	gen     uint64
	cancel  context.CancelFunc
	mounted bool
	wg      sync.WaitGroup
}

func NewController(cfg ClientConfig, acquirer Acquirer, opts ...Option) (*Controller, error) {
	c := &Controller{
		cfg:      cfg,
		acquirer: acquirer,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.acquirer == nil {
		return nil, errors.New("checkout: acquirer is required")
	}
	if cfg.Mode.Embedded() && c.mounter == nil {
		return nil, errors.New("checkout: embedded modes need a mounter")
	}
	if cfg.Mode == Redirect && c.navigator == nil {
		return nil, errors.New("checkout: redirect mode needs a navigator")
	}
	return c, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open starts an acquisition from Idle. It reports false and does nothing
// in any other state.
func (c *Controller) Open(ctx context.Context) bool {
	return c.begin(ctx, StatusIdle)
}

// Retry starts a fresh acquisition from Error. Previous secrets are never
// reused.
func (c *Controller) Retry(ctx context.Context) bool {
	return c.begin(ctx, StatusError)
}

// Close returns to Idle from any state. An in-flight acquisition is
// cancelled and its result dropped.
func (c *Controller) Close() {
	c.effects.Lock()
	defer c.effects.Unlock()

	c.mu.Lock()
	prev := c.state.Status
	c.gen++
	c.state = State{Status: StatusIdle}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	unmount := c.mounted
	c.mounted = false
	c.mu.Unlock()

	if unmount {
		c.mounter.Unmount()
	}
	if prev != StatusIdle {
		c.logger.Debug("checkout closed", zap.Stringer("from", prev))
		c.notify(State{Status: StatusIdle})
	}
}

// Wait blocks until every started acquisition has returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) begin(ctx context.Context, from Status) bool {
	c.effects.Lock()
	defer c.effects.Unlock()

	c.mu.Lock()
	if c.state.Status != from {
		c.mu.Unlock()
		return false
	}
	c.gen++
	gen := c.gen
	c.state = State{Status: StatusLoading}
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Debug("checkout loading", zap.Stringer("mode", c.cfg.Mode), zap.Uint64("attempt", gen))
	c.notify(State{Status: StatusLoading})

	go c.acquire(ctx, gen)
	return true
}

func (c *Controller) acquire(ctx context.Context, gen uint64) {
	defer c.wg.Done()

	var sess Session
	var err error
	if c.cfg.PublishableKey == "" {
		err = newError(ConfigurationError, msgKeyMissing, nil)
	} else {
		sess, err = c.acquirer.Acquire(ctx)
	}
	c.complete(gen, sess, err)
}

func (c *Controller) complete(gen uint64, sess Session, err error) {
	c.effects.Lock()
	defer c.effects.Unlock()

	if err == nil {
		if (c.cfg.Mode.Embedded() && sess.ClientSecret == "") || (c.cfg.Mode == Redirect && sess.URL == "") {
			err = newError(ProviderError, msgEmptySession, nil)
		}
	}

	c.mu.Lock()
	if gen != c.gen || c.state.Status != StatusLoading {
		c.mu.Unlock()
		c.logger.Debug("stale checkout result dropped", zap.Uint64("attempt", gen))
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if err != nil {
		c.state = failedState(err)
	} else if c.cfg.Mode.Embedded() {
		c.state = State{Status: StatusReady, ClientSecret: sess.ClientSecret}
		c.mounted = true
	} else {
		c.state = State{Status: StatusRedirected, RedirectURL: sess.URL}
	}
	next := c.state
	c.mu.Unlock()

	switch next.Status {
	case StatusError:
		c.logger.Warn("checkout session unavailable", zap.Stringer("kind", next.ErrorKind), zap.Error(err))
		c.notify(next)
	case StatusReady:
		if mountErr := c.mounter.Mount(c.cfg.PublishableKey, next.ClientSecret); mountErr != nil {
			c.logger.Error("checkout mount failed", zap.Error(mountErr))
			c.mu.Lock()
			c.mounted = false
			c.state = failedState(newError(ProviderError, msgMountFailed, mountErr))
			next = c.state
			c.mu.Unlock()
		}
		c.notify(next)
	case StatusRedirected:
		c.notify(next)
		c.navigator.Navigate(next.RedirectURL)
	}
}

func (c *Controller) notify(s State) {
	if c.listener != nil {
		c.listener(s)
	}
}

func failedState(err error) State {
	var checkoutErr *Error
	if errors.As(err, &checkoutErr) {
		return State{Status: StatusError, Error: checkoutErr.Message, ErrorKind: checkoutErr.Kind}
	}
	return State{Status: StatusError, Error: msgRequestFailed, ErrorKind: ProviderError}
}
