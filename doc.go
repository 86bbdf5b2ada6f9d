// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package winrt is a runtime projection engine for the Windows Runtime
// component object model. Interfaces are described as data — identity
// GUID, ordered method list, per-method parameter shapes — and any
// method on a live component handle can be invoked without
// interface-specific code generation.
//
// # Quick Start
//
//	if err := winrt.Initialize(); err != nil { /* ... */ }
//
//	factory, err := winrt.ActivationFactory("Windows.Foundation.Uri")
//	uriFactory, err := factory.Cast(iidUriFactory)
//	// build a descriptor, dispatch CreateUri, read the out value...
//	host, err := winrt.CallSingleOut(uri, 11, winrt.TypeString) // get_Host
//
// # Resource Lifecycle
//
// Handle and string values own exactly one platform reference each.
// Release them explicitly with Release(); Clone() takes an additional
// reference. Every handle obtained from a successful call arrives with
// its reference already transferred — no extra count is taken.
//
// # Thread Safety
//
// The engine is stateless; every call is a function of its arguments
// plus the calling thread's apartment state. Initialize must run on
// each thread that dispatches, before its first dispatch. Whether
// Release must run on the apartment that produced a handle is not
// enforced here; callers moving handles across threads carry that
// responsibility, as the platform itself prescribes.
package winrt
