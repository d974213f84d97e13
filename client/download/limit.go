package download

import (
	"context"
	"io"
)

// limitedReader is an io.Reader that fails with ErrResponseTooLarge
// once more than limit bytes have been read from r.
type limitedReader struct {
	r     io.Reader
	limit int64
	read  int64
}

// LimitReader caps r at limit bytes. Unlike io.LimitReader the overrun is
// an error rather than a silent EOF. A limit <= 0 returns r unchanged.
func LimitReader(r io.Reader, limit int64) io.Reader {
	if limit <= 0 {
		return r
	}

	return &limitedReader{r: r, limit: limit}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.read > l.limit {
		return 0, TooLarge(l.limit)
	}

	// Allow one byte past the limit so an exact-size body still sees EOF.
	if max := l.limit - l.read + 1; int64(len(p)) > max {
		p = p[:max]
	}

	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		return n - int(l.read-l.limit), TooLarge(l.limit)
	}

	return n, err
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
