package controller

import "context"

// Emission tracks one background delivery of a result record. A nil
// *Emission means nothing was sent and is always complete.
type Emission struct {
	done chan struct{}
	err  error
}

// Done is closed once delivery finished, successfully or not.
func (e *Emission) Done() <-chan struct{} {
	if e == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return e.done
}

// Wait blocks until delivery finishes or ctx ends. The context only bounds
// the wait; it does not cancel the delivery.
func (e *Emission) Wait(ctx context.Context) error {
	if e == nil {
		return nil
	}
	select {
	case <-e.done:
		return e.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
