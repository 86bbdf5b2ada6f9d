// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package winrt

import "errors"

// Engine sentinel errors. Platform status codes travel alongside these
// as wrapped com.HRESULT values; use errors.As to recover the raw code.
var (
	// ErrTypeMismatch is returned when a value list disagrees with a
	// method descriptor in count or kind. No indirect call is made.
	ErrTypeMismatch = errors.New("winrt: value does not match method descriptor")

	// ErrNoInterface is returned when a cast fails because the
	// component does not expose the requested interface identity.
	ErrNoInterface = errors.New("winrt: interface not supported")

	// ErrClassNotRegistered is returned when no activation factory is
	// registered for the requested class name.
	ErrClassNotRegistered = errors.New("winrt: class not registered")

	// ErrActivationFailed is returned when factory acquisition fails
	// for a reason other than a missing registration.
	ErrActivationFailed = errors.New("winrt: activation factory acquisition failed")

	// ErrBootstrapFailed is returned when the optional platform
	// extension bootstrap cannot load or initialize.
	ErrBootstrapFailed = errors.New("winrt: platform extension bootstrap failed")

	// ErrCanceled is returned when an async operation terminates as
	// canceled.
	ErrCanceled = errors.New("winrt: async operation canceled")

	// ErrInvalidState is returned when an operation is attempted on a
	// value in an unusable state, such as awaiting an already-settled
	// future or using a released value.
	ErrInvalidState = errors.New("winrt: operation on value in invalid state")
)
