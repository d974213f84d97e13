package download

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// progressWriter is an io.Writer that tracks transferred bytes, logging
// at most once per second when logging is enabled and handing every
// update to fn when one is set.
type progressWriter struct {
	w           io.Writer
	logger      *slog.Logger
	fn          ProgressFunc
	transferred int64
	total       int64
	startTime   time.Time
	lastLog     time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.transferred += int64(n)

	if pw.fn != nil {
		pw.fn(pw.transferred, pw.total)
	}

	if pw.logger == nil {
		return n, err
	}

	if time.Since(pw.lastLog) >= time.Second {
		pw.lastLog = time.Now()
		pw.log("downloading")
	}

	if pw.total >= 0 && pw.transferred == pw.total {
		pw.log("download complete")
	}

	return n, err
}

func (pw *progressWriter) log(msg string) {
	elapsed := time.Since(pw.startTime)

	progress := "unknown"
	if pw.total > 0 {
		progress = fmt.Sprintf("%.1f%%", float64(pw.transferred)/float64(pw.total)*100)
	}

	attrs := []any{
		"progress", progress,
		"elapsed", elapsed.Round(time.Millisecond),
		"transferred", pw.transferred,
		"total", pw.total,
		"mbps", fmt.Sprintf("%.2f", float64(pw.transferred)/elapsed.Seconds()/(1024*1024)),
	}

	pw.logger.Info(msg, attrs...)
}
