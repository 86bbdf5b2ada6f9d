// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package apartment provides a dedicated OS thread for component
// calls. The platform's apartment state is per OS thread: a handle
// produced on one apartment should be used (and, conservatively,
// released) from a compatibly initialized thread. Serializing all
// component work onto one locked thread is the simplest way for a
// consumer to honor that.
package apartment

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Thread represents a dedicated OS thread for component operations.
// All function calls are serialized and executed on the same thread.
type Thread struct {
	funcs   chan func()
	done    chan struct{}
	running atomic.Bool
}

// New creates a new thread and starts it. init runs first on the
// locked thread; its error is returned and, when non-nil, the thread
// is stopped before New returns.
func New(init func() error) (*Thread, error) {
	t := &Thread{
		funcs: make(chan func(), 16),
		done:  make(chan struct{}),
	}
	t.running.Store(true)

	var wg sync.WaitGroup
	wg.Add(1)
	var initErr error

	go func() {
		// Lock this goroutine to an OS thread; the apartment entered
		// by init belongs to this thread alone.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if init != nil {
			initErr = init()
		}
		wg.Done()
		if initErr != nil {
			return
		}

		for {
			select {
			case f := <-t.funcs:
				f()
			case <-t.done:
				return
			}
		}
	}()

	wg.Wait()
	if initErr != nil {
		t.Stop()
		return nil, initErr
	}
	return t, nil
}

// Call executes f on the thread and waits for its error.
func (t *Thread) Call(f func() error) error {
	if !t.running.Load() {
		return nil
	}

	done := make(chan error, 1)
	t.funcs <- func() {
		done <- f()
	}
	return <-done
}

// CallVoid executes f on the thread and waits for completion.
func (t *Thread) CallVoid(f func()) {
	if !t.running.Load() {
		return
	}

	done := make(chan struct{})
	t.funcs <- func() {
		f()
		close(done)
	}
	<-done
}

// Stop stops the thread.
func (t *Thread) Stop() {
	if t.running.Swap(false) {
		close(t.done)
	}
}

// IsRunning returns true if the thread is running.
func (t *Thread) IsRunning() bool {
	return t.running.Load()
}
