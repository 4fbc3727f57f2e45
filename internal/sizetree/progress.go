package sizetree

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Progress is a snapshot of a running or finished scan.
type Progress struct {
	// Files is the number of files visited.
	Files int64
	// Dirs is the number of directories visited.
	Dirs int64
	// Bytes is the cumulative logical size of the visited files.
	Bytes uint64
}

// counters are updated by the walking goroutine and read concurrently by reporters.
type counters struct {
	files atomic.Int64
	dirs  atomic.Int64
	bytes atomic.Uint64
}

func (c *counters) reset() {
	c.files.Store(0)
	c.dirs.Store(0)
	c.bytes.Store(0)
}

func (c *counters) snapshot() Progress {
	return Progress{
		Files: c.files.Load(),
		Dirs:  c.dirs.Load(),
		Bytes: c.bytes.Load(),
	}
}

// ProgressSource exposes the progress of a scan.
type ProgressSource interface {
	Progress() Progress
}

// ReportProgress invokes hook with a snapshot of src on each tick until ctx is
// done. The returned channel is closed once hook will no longer be called.
func ReportProgress(ctx context.Context, src ProgressSource, hook func(Progress), interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	if hook == nil {
		close(done)

		return done
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}

				hook(src.Progress())
			}
		}
	}()

	return done
}
