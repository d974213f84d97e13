package modhttp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adamwoolhether/modhttp/client/throttle"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Session] via [New].
type Option func(*options) error
type options struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	userAgent string
	accept    string
	throttle  *throttle.Config
	transport http.RoundTripper
}

// WithLogger injects a custom [slog.Logger] into the [Session].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer records a span for every public Session call.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithUserAgent replaces the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		if ua == "" {
			return errors.New("user agent must not be empty")
		}
		o.userAgent = ua
		return nil
	}
}

// WithAccept replaces the default Accept header.
func WithAccept(mediaType string) Option {
	return func(o *options) error {
		if mediaType == "" {
			return errors.New("accept media type must not be empty")
		}
		o.accept = mediaType
		return nil
	}
}

// WithThrottle limits the session to rps requests per second with the given burst.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithTransport sets the base transport, e.g. for tests or proxies.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.transport = rt
		return nil
	}
}
