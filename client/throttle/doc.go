// Package throttle provides an [http.RoundTripper] that rate-limits
// outbound HTTP requests using a token-bucket algorithm from
// [golang.org/x/time/rate].
//
// Mod metadata usually comes from a rate-limited hosting API, so a
// session can keep its request rate under the provider's quota:
//
//	rt, err := throttle.NewRoundTripper(
//		1, // requests per second
//		5, // burst capacity
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//
// When the bucket is empty, requests block until a token becomes
// available or the request context ends.
package throttle
