package modhttp

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"sync/atomic"

	"github.com/adamwoolhether/modhttp/client"
	"github.com/adamwoolhether/modhttp/client/archive"
	"github.com/adamwoolhether/modhttp/client/download"
	"github.com/adamwoolhether/modhttp/config"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/adamwoolhether/modhttp"

// Session is the shared HTTP session used for every mod download.
// It is safe for concurrent use.
type Session struct {
	client   *client.Client
	logger   *slog.Logger
	tracer   trace.Tracer
	settings atomic.Pointer[config.Settings]
}

// New initializes a Session: it pins TLS 1.2 as the minimum version,
// installs the default User-Agent and Accept headers and applies settings.
func New(settings config.Settings, optFns ...Option) (*Session, error) {
	opts := options{
		userAgent: config.DefaultUserAgent,
		accept:    config.DefaultAccept,
	}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying session option: %w", err)
		}
	}

	if err := config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	s := &Session{
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}

	if opts.logger != nil {
		s.logger = opts.logger
	}

	if opts.tracer != nil {
		s.tracer = opts.tracer
	}

	clientOpts := []client.Option{
		client.WithLogger(s.logger),
		client.WithUserAgent(opts.userAgent),
		client.WithDefaultHeader("Accept", opts.accept),
		client.WithTLSMinVersion(tls.VersionTLS12),
	}
	if opts.transport != nil {
		clientOpts = append(clientOpts, client.WithTransport(opts.transport))
	}
	if opts.throttle != nil {
		clientOpts = append(clientOpts, client.WithThrottle(opts.throttle.RPS, opts.throttle.Burst))
	}

	c, err := client.Build(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("building client: %w", err)
	}
	s.client = c

	s.settings.Store(&settings)

	return s, nil
}

// UpdateSettings swaps in new settings for every request started from now on.
// It is a best-effort refresh: invalid settings are logged and ignored.
func (s *Session) UpdateSettings(settings config.Settings) {
	if err := config.Validate(settings); err != nil {
		s.logger.Debug("ignoring settings update", "error", err)
		return
	}

	s.settings.Store(&settings)

	s.logger.Debug("settings updated",
		"timeout", settings.RequestTimeout,
		"normal_limit", settings.NormalLimit(),
		"mod_limit", settings.ModLimit(),
	)
}

// Settings returns the current settings snapshot.
func (s *Session) Settings() config.Settings {
	return *s.settings.Load()
}

// SizeCap returns the response size cap in bytes for p under the
// current settings.
func (s *Session) SizeCap(p Purpose) int64 {
	return sizeCap(s.Settings(), p)
}

func sizeCap(settings config.Settings, p Purpose) int64 {
	if p == PurposeModUpdate {
		return settings.ModLimit()
	}

	return settings.NormalLimit()
}

// DownloadFile streams url into filePath, creating or replacing it.
// The file only appears once the whole body has arrived within the mod
// update cap. Failures are logged as warnings and reported in the Result.
func (s *Session) DownloadFile(ctx context.Context, rawURL, filePath string, opts ...download.Option) Result {
	ctx, op := s.begin(ctx, "DownloadFile", rawURL, PurposeModUpdate)

	err := s.downloadFile(ctx, op, rawURL, filePath, opts)
	op.end(err)

	if err != nil {
		res := failed(err)
		op.logger.Warn("download failed", "path", filePath, "reason", res.Reason, "error", err)
		return res
	}

	op.logger.Info("download complete", "path", filePath)

	return Result{Path: filePath}
}

func (s *Session) downloadFile(ctx context.Context, op *operation, rawURL, filePath string, opts []download.Option) error {
	req, err := newRequest(ctx, rawURL)
	if err != nil {
		return err
	}

	// The cap goes last so callers cannot lift it.
	opts = append(slices.Clone(opts), download.WithMaxBytes(op.sizeCap))

	return s.client.Download(req, http.StatusOK, filePath, opts...)
}

// GetZip fetches url into memory, bounded by the mod update cap, and
// opens it as a zip archive. The caller must Close the archive.
// Errors are returned, not logged.
func (s *Session) GetZip(ctx context.Context, rawURL string) (a *archive.Archive, err error) {
	ctx, op := s.begin(ctx, "GetZip", rawURL, PurposeModUpdate)
	defer func() { op.end(err) }()

	req, err := newRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	b, err := s.client.ReadAll(req, http.StatusOK, client.WithBodyLimit(op.sizeCap))
	if err != nil {
		return nil, err
	}

	return archive.Open(b)
}

// DownloadZip fetches a zip archive and extracts it into path. An empty
// path means the configured zip temp directory, which is removed first so
// only this archive's contents remain. Failures are logged as warnings and
// reported in the Result; partially extracted files are left in place.
func (s *Session) DownloadZip(ctx context.Context, rawURL, path string) Result {
	ctx, op := s.begin(ctx, "DownloadZip", rawURL, PurposeModUpdate)

	dir, err := s.downloadZip(ctx, op, rawURL, path)
	op.end(err)

	if err != nil {
		res := failed(err)
		op.logger.Warn("zip download failed", "path", path, "reason", res.Reason, "error", err)
		return res
	}

	op.logger.Info("zip extracted", "path", dir)

	return Result{Path: dir}
}

func (s *Session) downloadZip(ctx context.Context, op *operation, rawURL, path string) (string, error) {
	if path == "" {
		path = op.settings.ZipTempDir
		if err := os.RemoveAll(path); err != nil {
			return "", fmt.Errorf("clearing zip temp dir: %w", err)
		}
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating target dir: %w", err)
	}

	zip, err := s.GetZip(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("getting zip: %w", err)
	}
	defer zip.Close()

	if err := zip.Extract(path); err != nil {
		return "", fmt.Errorf("extracting zip: %w", err)
	}

	return path, nil
}

// GetJSON decodes the JSON body at url into dest, which must be a pointer.
// It runs under the normal size cap.
func (s *Session) GetJSON(ctx context.Context, rawURL string, dest any) (err error) {
	ctx, op := s.begin(ctx, "GetJSON", rawURL, PurposeNormal)
	defer func() { op.end(err) }()

	req, err := newRequest(ctx, rawURL)
	if err != nil {
		return err
	}

	return s.client.Do(req, http.StatusOK,
		client.WithDestination(&dest),
		client.WithBodyLimit(op.sizeCap),
	)
}

// Target is one file of a batch download.
type Target struct {
	URL  string
	Path string
}

// DownloadFiles downloads targets with at most maxConcurrent transfers in
// flight (unlimited when <= 0). Results line up with targets.
func (s *Session) DownloadFiles(ctx context.Context, targets []Target, maxConcurrent int) []Result {
	results := make([]Result, len(targets))
	pending := make([]*download.Result, len(targets))

	q := download.NewQueue(maxConcurrent)
	for i, t := range targets {
		pending[i] = q.Start(ctx, func(ctx context.Context) error {
			results[i] = s.DownloadFile(ctx, t.URL, t.Path)
			return results[i].Err
		})
	}

	if err := q.Wait(); err != nil {
		s.logger.Warn("batch download finished with errors", "targets", len(targets), "error", err)
	}

	// Work that never got a slot (cancelled while queued) has no Result yet.
	for i, p := range pending {
		if results[i].Path == "" && results[i].Err == nil {
			results[i] = failed(p.Err())
		}
	}

	return results
}

// operation carries the per-call state: a settings snapshot, the size
// cap derived from it, a logger and a span.
type operation struct {
	settings config.Settings
	sizeCap  int64
	logger   *slog.Logger
	span     trace.Span
	cancel   context.CancelFunc
}

func (s *Session) begin(ctx context.Context, name, rawURL string, p Purpose) (context.Context, *operation) {
	settings := s.Settings()
	id := uuid.NewString()
	limit := sizeCap(settings, p)

	ctx, span := s.tracer.Start(ctx, "modhttp."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("modhttp.download_id", id),
			attribute.String("modhttp.url", rawURL),
			attribute.String("modhttp.purpose", p.String()),
			attribute.Int64("modhttp.size_cap", limit),
		),
	)

	ctx, cancel := context.WithTimeout(ctx, settings.RequestTimeout)

	op := &operation{
		settings: settings,
		sizeCap:  limit,
		logger:   s.logger.With("op", name, "download_id", id, "url", rawURL, "purpose", p.String()),
		span:     span,
		cancel:   cancel,
	}

	return ctx, op
}

func (op *operation) end(err error) {
	op.cancel()

	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
		op.span.SetAttributes(attribute.String("modhttp.reason", classify(err).String()))
	}

	op.span.End()
}
