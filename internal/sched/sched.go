// Package sched runs long-lived background tasks one at a time.
//
// The UI stays responsive by handing slow work (event searches, file
// exports) to the scheduler and redrawing on the completion
// notification. Only one task may hold the slot; submitting while one
// runs is rejected rather than queued, so the user always knows whether
// something is in flight.
package sched

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/litescript/nexus-tracker/internal/logging"
)

// ErrBusy is returned by Submit while a task holds the slot.
var ErrBusy = errors.New("a task is already running")

// Status of the scheduler slot.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
)

func (s Status) String() string {
	if s == StatusRunning {
		return "running"
	}
	return "idle"
}

// Job is a unit of background work. The summary is shown to the user on
// success.
type Job func(ctx context.Context) (summary string, err error)

// Notification reports a finished task. Exactly one is delivered per
// accepted Submit, on the scheduler's single notification channel.
type Notification struct {
	Name     string
	Summary  string
	Err      error
	Panicked bool
	Duration time.Duration
}

// Scheduler owns a single task slot. Safe for concurrent use.
type Scheduler struct {
	log     *logging.Logger
	running atomic.Bool
	done    chan Notification

	mu      sync.Mutex
	current string
}

// New creates an idle scheduler. The notification channel is buffered;
// the consumer must drain it, or eventually completed tasks block on
// delivery.
func New(log *logging.Logger) *Scheduler {
	return &Scheduler{
		log:  log.WithComponent("sched"),
		done: make(chan Notification, 16),
	}
}

// Notifications returns the completion channel. There is exactly one
// consumer side by design: the presentation loop.
func (s *Scheduler) Notifications() <-chan Notification {
	return s.done
}

// Status returns the slot state and, while running, the task name.
func (s *Scheduler) Status() (Status, string) {
	if !s.running.Load() {
		return StatusIdle, ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatusRunning, s.current
}

// Submit tries to take the slot and run the job on its own goroutine.
// If a task already holds the slot it returns ErrBusy and the job never
// starts. The slot is released when the job returns, errors or panics;
// a panicking job surfaces as a failed Notification, never as a crash.
func (s *Scheduler) Submit(ctx context.Context, name string, job Job) error {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Debug("rejected %q: %v", name, ErrBusy)
		return ErrBusy
	}
	s.mu.Lock()
	s.current = name
	s.mu.Unlock()
	s.log.Info("started %q", name)

	go func() {
		start := time.Now()
		n := Notification{Name: name}
		defer func() {
			if r := recover(); r != nil {
				n.Panicked = true
				n.Err = fmt.Errorf("task %q panicked: %v", name, r)
			}
			n.Duration = time.Since(start)

			// Release before delivery so a slow consumer never
			// wedges the slot.
			s.mu.Lock()
			s.current = ""
			s.mu.Unlock()
			s.running.Store(false)

			if n.Err != nil {
				s.log.Error("finished %q in %s: %v", name, n.Duration.Round(time.Millisecond), n.Err)
			} else {
				s.log.Info("finished %q in %s", name, n.Duration.Round(time.Millisecond))
			}
			s.done <- n
		}()
		n.Summary, n.Err = job(ctx)
	}()
	return nil
}
