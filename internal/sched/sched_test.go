package sched

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/litescript/nexus-tracker/internal/logging"
)

func waitNotification(t *testing.T, s *Scheduler) Notification {
	t.Helper()
	select {
	case n := <-s.Notifications():
		return n
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for notification")
		return Notification{}
	}
}

func TestSubmitRunsAndNotifiesOnce(t *testing.T) {
	s := New(logging.Discard())

	err := s.Submit(context.Background(), "probe", func(ctx context.Context) (string, error) {
		return "done", nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	n := waitNotification(t, s)
	if n.Name != "probe" || n.Summary != "done" || n.Err != nil {
		t.Errorf("notification = %+v", n)
	}

	select {
	case extra := <-s.Notifications():
		t.Errorf("second notification for one submit: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}

	if st, _ := s.Status(); st != StatusIdle {
		t.Errorf("status = %s, want idle", st)
	}
}

func TestSubmitWhileRunningIsRejected(t *testing.T) {
	s := New(logging.Discard())
	release := make(chan struct{})

	err := s.Submit(context.Background(), "slow", func(ctx context.Context) (string, error) {
		<-release
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if st, name := s.Status(); st != StatusRunning || name != "slow" {
		t.Errorf("status = %s %q, want running slow", st, name)
	}
	if err := s.Submit(context.Background(), "second", func(ctx context.Context) (string, error) {
		t.Error("rejected job must never start")
		return "", nil
	}); !errors.Is(err, ErrBusy) {
		t.Errorf("second submit err = %v, want ErrBusy", err)
	}

	close(release)
	n := waitNotification(t, s)
	if n.Name != "slow" {
		t.Errorf("notification for %q, want slow", n.Name)
	}
}

func TestSlotReleasedAfterError(t *testing.T) {
	s := New(logging.Discard())
	boom := errors.New("boom")

	if err := s.Submit(context.Background(), "failing", func(ctx context.Context) (string, error) {
		return "", boom
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	n := waitNotification(t, s)
	if !errors.Is(n.Err, boom) {
		t.Errorf("notification err = %v, want boom", n.Err)
	}
	if st, _ := s.Status(); st != StatusIdle {
		t.Errorf("status = %s, want idle after failure", st)
	}
}

func TestSlotReleasedAfterPanic(t *testing.T) {
	s := New(logging.Discard())

	if err := s.Submit(context.Background(), "panicking", func(ctx context.Context) (string, error) {
		panic("lost the plot")
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	n := waitNotification(t, s)
	if !n.Panicked || n.Err == nil {
		t.Errorf("notification = %+v, want panicked with error", n)
	}

	// The slot must be usable again.
	if err := s.Submit(context.Background(), "after", func(ctx context.Context) (string, error) {
		return "recovered", nil
	}); err != nil {
		t.Fatalf("Submit after panic: %v", err)
	}
	if n := waitNotification(t, s); n.Summary != "recovered" {
		t.Errorf("notification = %+v", n)
	}
}

func TestSequentialJobsNotifyInOrder(t *testing.T) {
	s := New(logging.Discard())

	const jobs = 5
	for i := 0; i < jobs; i++ {
		summary := fmt.Sprintf("job-%d", i)
		if err := s.Submit(context.Background(), summary, func(ctx context.Context) (string, error) {
			return summary, nil
		}); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		// Wait for completion before the next submit; the slot is
		// single-flight, not a queue.
		n := waitNotification(t, s)
		if n.Summary != summary {
			t.Errorf("job %d: notification %q", i, n.Summary)
		}
	}
}

func TestJobReceivesContext(t *testing.T) {
	s := New(logging.Discard())
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "threaded")

	if err := s.Submit(ctx, "ctx", func(ctx context.Context) (string, error) {
		v, _ := ctx.Value(key{}).(string)
		return v, nil
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if n := waitNotification(t, s); n.Summary != "threaded" {
		t.Errorf("summary = %q, want context value threaded", n.Summary)
	}
}
