package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Interrupt turns the first SIGINT or SIGTERM during a long command into a
// canceled context and a short note on what survived.
type Interrupt struct {
	w         io.Writer
	cancel    context.CancelFunc
	operation string
	kept      string
	once      sync.Once
	fired     chan struct{}
}

// WatchInterrupts derives a context that is canceled when the process is
// interrupted. kept, when not empty, tells the user what is already saved.
// Call Stop when the work is done.
func WatchInterrupts(ctx context.Context, w io.Writer, operation, kept string) (context.Context, *Interrupt) {
	ctx, cancel := context.WithCancel(ctx)
	in := &Interrupt{
		w:         w,
		cancel:    cancel,
		operation: operation,
		kept:      kept,
		fired:     make(chan struct{}),
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			in.Trigger()
		case <-ctx.Done():
		}
	}()

	return ctx, in
}

// Trigger behaves as if a signal arrived. Only the first call has an effect.
func (in *Interrupt) Trigger() {
	in.once.Do(func() {
		close(in.fired)
		fmt.Fprintln(in.w)
		fmt.Fprintln(in.w, FormatWarning(in.operation+" interrupted"))
		if in.kept != "" {
			fmt.Fprintln(in.w, FormatInfo(in.kept))
		}
		in.cancel()
	})
}

// Fired reports whether the work was interrupted.
func (in *Interrupt) Fired() bool {
	select {
	case <-in.fired:
		return true
	default:
		return false
	}
}

// Stop releases the signal handler.
func (in *Interrupt) Stop() {
	in.cancel()
}
