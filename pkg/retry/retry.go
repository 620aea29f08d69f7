package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

type Operation = func() error

// ErrExhausted is returned by Poll when MaxRetries checks passed without completion.
var ErrExhausted = errors.New("retry: attempts exhausted")

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    5,
		BackoffFactor: 2.15,
		InitialDelay:  300 * time.Millisecond,
		MaxDelay:      20 * time.Second,
		Jitter:        50 * time.Millisecond,
	}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: config,
	}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying. Do returns the unwrapped error immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func (r *Retrier) Do(ctx context.Context, op Operation) error {
	var err error
	delay := r.config.InitialDelay

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		if attempt == r.config.MaxRetries {
			return err
		}

		if waitErr := r.wait(ctx, delay); waitErr != nil {
			return waitErr
		}
		delay = r.grow(delay)
	}
	return err
}

// Poll calls check until it reports done, returns an error or the context ends.
// The pause between checks starts at InitialDelay and grows by BackoffFactor up to MaxDelay.
// A positive MaxRetries bounds the number of checks after the first one.
func (r *Retrier) Poll(ctx context.Context, check func(ctx context.Context) (bool, error)) error {
	delay := r.config.InitialDelay

	for attempt := 0; ; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if r.config.MaxRetries > 0 && attempt >= r.config.MaxRetries {
			return ErrExhausted
		}

		if err := r.wait(ctx, delay); err != nil {
			return err
		}
		delay = r.grow(delay)
	}
}

func (r *Retrier) wait(ctx context.Context, delay time.Duration) error {
	var jitter time.Duration
	if r.config.Jitter > 0 {
		jitter = time.Duration(rand.Float64() * float64(r.config.Jitter))
	}
	nextDelay := delay + jitter
	if r.config.MaxDelay > 0 && nextDelay > r.config.MaxDelay {
		nextDelay = r.config.MaxDelay + jitter
	}

	timer := time.NewTimer(nextDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Retrier) grow(delay time.Duration) time.Duration {
	if r.config.BackoffFactor > 1 {
		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
	}
	if r.config.MaxDelay > 0 && delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}
	return delay
}
