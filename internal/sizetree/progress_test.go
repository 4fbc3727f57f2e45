package sizetree

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type staticProgress Progress

func (s staticProgress) Progress() Progress { return Progress(s) }

func TestReportProgress(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Progress, 1)

	ReportProgress(ctx, staticProgress{Files: 3, Bytes: 42}, func(p Progress) {
		select {
		case got <- p:
		default:
		}
	}, time.Millisecond)

	select {
	case p := <-got:
		if p.Files != 3 || p.Bytes != 42 {
			t.Errorf("hook received %+v", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("progress hook was never called")
	}
}

func TestReportProgressNilHook(t *testing.T) {
	done := ReportProgress(context.Background(), staticProgress{}, nil, 0)

	select {
	case <-done:
	default:
		t.Error("done should be closed when there is no hook")
	}
}

func TestReportProgressStopsBeforeDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int64

	done := ReportProgress(ctx, staticProgress{}, func(Progress) {
		calls.Add(1)
	}, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reporter did not stop after cancel")
	}

	after := calls.Load()

	time.Sleep(20 * time.Millisecond)

	if got := calls.Load(); got != after {
		t.Errorf("hook called %d times after done was closed", got-after)
	}
}
