// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package com is the raw Windows Runtime binding: GUIDs, HSTRINGs,
// HRESULTs, the base-component vtable contract, runtime initialization
// and activation-factory acquisition. Higher layers build the dynamic
// type and dispatch model on top of it; nothing here interprets method
// shapes beyond the universal slots.
//
// Every object pointer handled by this package conforms to the COM
// contract: the first machine word points to a table of function
// pointers whose first three slots are QueryInterface, AddRef and
// Release. WinRT (IInspectable-based) interfaces reserve three further
// inspection slots at positions 3-5, which this package reserves but
// never calls.
package com
