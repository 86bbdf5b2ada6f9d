// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/gogpu/winrt/com"
	"github.com/gogpu/winrt/internal/poll"
)

// IAsyncInfo vtable layout: the six reserved inspectable slots, then
// get_Id, get_Status, get_ErrorCode, Cancel, Close.
const (
	asyncInfoStatusSlot    = 7
	asyncInfoErrorCodeSlot = 8
)

// IAsyncOperation<T> vtable layout: the six reserved inspectable
// slots, then put_Completed, get_Completed, GetResults. GetResults is
// dispatched against the concrete operation interface whose IID the
// AsyncOp value carries.
const asyncOpGetResultsSlot = 8

// AsyncStatus is the platform async-operation state.
type AsyncStatus int32

const (
	// AsyncStarted means the operation is still in flight.
	AsyncStarted AsyncStatus = iota
	// AsyncCompleted means the operation finished and results are
	// available.
	AsyncCompleted
	// AsyncCanceled means the operation was canceled.
	AsyncCanceled
	// AsyncError means the operation failed; the error code is
	// available from the async-info interface.
	AsyncError
)

type futureState uint8

const (
	statePollPending futureState = iota
	stateReady
	stateFailed
	stateSettled // terminal outcome handed to the caller, or closed
)

// Future adapts a platform async-operation handle into a pollable
// result. It owns the AsyncOp value it was created from; Close
// releases the held references whether or not the operation settled.
// A Future is not safe for concurrent use.
type Future struct {
	op     *Value // the async-operation handle, concrete interface
	info   *Value // the same object cast to the async-info interface
	out    Type   // requested result type
	state  futureState
	result *Value
	err    error
}

// Future turns an async-operation value into a pollable future whose
// terminal value has type out. The future takes ownership of the
// receiver; the caller must not release it separately.
func (v *Value) Future(out Type) (*Future, error) {
	if v.released || v.t.kind != kindAsyncOp {
		return nil, ErrInvalidState
	}

	info, err := v.Cast(com.IID_IAsyncInfo)
	if err != nil {
		return nil, err
	}
	return &Future{op: v, info: info, out: out}, nil
}

// Status queries the operation's current state through the async-info
// status slot.
func (f *Future) Status() (AsyncStatus, error) {
	if f.info == nil {
		return 0, ErrInvalidState
	}

	var status int32
	hr := f.info.Invoke(asyncInfoStatusSlot, uintptr(unsafe.Pointer(&status)))
	if hr.Failed() {
		return 0, fmt.Errorf("winrt: async status query failed: %w", hr)
	}
	return AsyncStatus(status), nil
}

// Poll performs one state-machine tick. It returns false while the
// operation is still in flight; once a terminal status is observed the
// future settles into ready or failed and Poll returns true. Polling a
// future that already settled (or was closed) returns ErrInvalidState:
// terminal states are absorbing.
func (f *Future) Poll() (bool, error) {
	switch f.state {
	case stateReady, stateFailed, stateSettled:
		return true, ErrInvalidState
	}

	status, err := f.Status()
	if err != nil {
		f.state = stateFailed
		f.err = err
		return true, nil
	}

	switch status {
	case AsyncStarted:
		return false, nil

	case AsyncCompleted:
		result, err := CallSingleOut(f.op, asyncOpGetResultsSlot, f.out)
		if err != nil {
			f.state = stateFailed
			f.err = err
			return true, nil
		}
		asyncLog().Debug("winrt: future ready", "out", f.out.String())
		f.state = stateReady
		f.result = result
		return true, nil

	case AsyncCanceled:
		asyncLog().Debug("winrt: future canceled")
		f.state = stateFailed
		f.err = ErrCanceled
		return true, nil

	default: // AsyncError
		var code uint32
		hr := f.info.Invoke(asyncInfoErrorCodeSlot, uintptr(unsafe.Pointer(&code)))
		f.state = stateFailed
		if hr.Failed() {
			f.err = fmt.Errorf("winrt: async error code query failed: %w", hr)
		} else {
			f.err = fmt.Errorf("winrt: async operation failed: %w", com.HRESULT(code))
		}
		return true, nil
	}
}

// Await polls the operation to a terminal state, yielding between
// status queries, and returns the terminal value with ownership
// transferred to the caller. ctx cancels the wait, not the platform
// operation. Await on a future that already settled returns
// ErrInvalidState.
func (f *Future) Await(ctx context.Context) (*Value, error) {
	for attempt := 0; f.state == statePollPending; attempt++ {
		settled, err := f.Poll()
		if err != nil {
			return nil, err
		}
		if settled {
			break
		}
		if err := poll.Wait(ctx, attempt); err != nil {
			return nil, err
		}
	}
	if f.state == stateSettled {
		return nil, ErrInvalidState
	}

	state := f.state
	f.state = stateSettled
	if state == stateFailed {
		return nil, f.err
	}

	result := f.result
	f.result = nil
	return result, nil
}

// Close releases the future's references: the async-info cast first,
// any unclaimed result, and the operation value last. It does not
// cancel the platform operation. Close is idempotent; after it, Poll
// and Await return ErrInvalidState and no further status query is
// issued.
func (f *Future) Close() {
	if f.info != nil {
		f.info.Release()
		f.info = nil
	}
	if f.result != nil {
		f.result.Release()
		f.result = nil
	}
	if f.op != nil {
		f.op.Release()
		f.op = nil
	}
	f.state = stateSettled
}
