package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/ytlink/pkg/utils/async"
)

// safeBuffer is a thread-safe buffer for concurrent logging
type safeBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (sb *safeBuffer) Write(p []byte) (int, error) {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.Write(p)
}

func (sb *safeBuffer) String() string {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.String()
}

func newLoggerContext(buf *safeBuffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	return ctxlog.With(context.Background(), logger)
}

func waitAll(t *testing.T, d *async.Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	gt.NoError(t, d.Wait(ctx))
}

func TestDispatch(t *testing.T) {
	t.Run("executes handler asynchronously", func(t *testing.T) {
		d := async.New()
		executed := false

		d.Dispatch(context.Background(), func(ctx context.Context) error {
			executed = true
			return nil
		})

		waitAll(t, d)
		gt.True(t, executed)
	})

	t.Run("logs returned errors", func(t *testing.T) {
		logBuf := &safeBuffer{}
		d := async.New()

		d.Dispatch(newLoggerContext(logBuf), func(ctx context.Context) error {
			return errors.New("test error")
		})

		waitAll(t, d)
		logOutput := logBuf.String()
		gt.True(t, strings.Contains(logOutput, "error in async handler"))
		gt.True(t, strings.Contains(logOutput, "test error"))
	})

	t.Run("recovers from panic with stack trace", func(t *testing.T) {
		logBuf := &safeBuffer{}
		d := async.New()

		d.Dispatch(newLoggerContext(logBuf), func(ctx context.Context) error {
			panic("test panic with stack")
		})

		waitAll(t, d)
		logOutput := logBuf.String()

		// Check that panic message is logged
		gt.True(t, strings.Contains(logOutput, "panic in async handler"))
		gt.True(t, strings.Contains(logOutput, "test panic with stack"))

		// Check that stack trace is logged
		gt.True(t, strings.Contains(logOutput, "goroutine"))
		gt.True(t, strings.Contains(logOutput, "dispatch_test.go"))
	})

	t.Run("preserves context values", func(t *testing.T) {
		d := async.New()
		ctx := ctxlog.With(context.Background(), slog.Default())

		d.Dispatch(ctx, func(newCtx context.Context) error {
			gt.NotNil(t, ctxlog.From(newCtx))
			return nil
		})

		waitAll(t, d)
	})

	t.Run("creates new background context", func(t *testing.T) {
		d := async.New()
		ctx, cancel := context.WithCancel(context.Background())
		cancelled := false

		d.Dispatch(ctx, func(newCtx context.Context) error {
			// Cancel original context
			cancel()

			select {
			case <-newCtx.Done():
				cancelled = true
			default:
			}
			return nil
		})

		waitAll(t, d)
		gt.False(t, cancelled)
	})
}

func TestDispatcher_Wait(t *testing.T) {
	t.Run("returns immediately without handlers", func(t *testing.T) {
		waitAll(t, async.New())
	})

	t.Run("times out on slow handler", func(t *testing.T) {
		d := async.New()
		release := make(chan struct{})
		defer close(release)

		d.Dispatch(context.Background(), func(ctx context.Context) error {
			<-release
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		gt.Error(t, d.Wait(ctx))
	})
}
