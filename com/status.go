// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package com

import "fmt"

// HRESULT is a Windows status code. The high bit indicates failure;
// zero is S_OK. It implements error so that failing codes can be
// returned and wrapped directly.
type HRESULT uint32

// Well-known status codes.
const (
	S_OK    HRESULT = 0x00000000
	S_FALSE HRESULT = 0x00000001

	E_NOTIMPL             HRESULT = 0x80004001
	E_NOINTERFACE         HRESULT = 0x80004002
	E_POINTER             HRESULT = 0x80004003
	E_FAIL                HRESULT = 0x80004005
	E_ILLEGAL_METHOD_CALL HRESULT = 0x8000000E
	E_OUTOFMEMORY         HRESULT = 0x8007000E
	E_INVALIDARG          HRESULT = 0x80070057

	REGDB_E_CLASSNOTREG  HRESULT = 0x80040154
	CO_E_NOTINITIALIZED  HRESULT = 0x800401F0
	RPC_E_CHANGED_MODE   HRESULT = 0x80010106
	RO_E_CLOSED          HRESULT = 0x80000013
)

// Failed reports whether the code's failure bit is set.
func (hr HRESULT) Failed() bool { return hr&0x80000000 != 0 }

// Error implements the error interface.
func (hr HRESULT) Error() string {
	return fmt.Sprintf("com: HRESULT 0x%08X", uint32(hr))
}

// ResultError converts a raw status word returned from a platform call
// into an error. Success codes (failure bit clear) yield nil.
func ResultError(ret uintptr) error {
	hr := HRESULT(uint32(ret))
	if !hr.Failed() {
		return nil
	}
	return hr
}
