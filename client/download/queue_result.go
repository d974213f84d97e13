package download

import "context"

// Result represents in-flight or completed queued work.
type Result struct {
	done   chan struct{}
	err    error
	cancel context.CancelFunc
	queue  *Queue
}

// Done returns a channel that is closed when this work completes.
func (r *Result) Done() <-chan struct{} { return r.done }

// Err blocks until this work completes and returns its error.
func (r *Result) Err() error {
	<-r.done
	return r.err
}

// Wait blocks until all work in the queue completes.
func (r *Result) Wait() error {
	return r.queue.Wait()
}

// Cancel cancels this work's context.
func (r *Result) Cancel() {
	r.cancel()
}
