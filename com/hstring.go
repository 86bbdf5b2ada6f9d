// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package com

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// HString is a reference-counted immutable UTF-16 string owned by the
// platform allocator. The zero HString is the empty string and is
// valid everywhere an HString is accepted.
type HString uintptr

// NewHString creates a platform string with the contents of s. The
// caller owns the returned reference and must balance it with Delete.
func NewHString(s string) (HString, error) {
	lib, err := LoadCombase()
	if err != nil {
		return 0, err
	}

	u16, err := windows.UTF16FromString(s)
	if err != nil {
		return 0, fmt.Errorf("com: invalid string contents: %w", err)
	}
	// UTF16FromString appends a NUL terminator not counted by HSTRING length.
	length := len(u16) - 1

	var h HString
	var src unsafe.Pointer
	if length > 0 {
		src = unsafe.Pointer(&u16[0])
	}
	ret, _, _ := lib.windowsCreateString.Call(
		uintptr(src),
		uintptr(length),
		uintptr(unsafe.Pointer(&h)),
	)

	if err := ResultError(ret); err != nil {
		return 0, fmt.Errorf("com: WindowsCreateString failed: %w", err)
	}
	return h, nil
}

// Delete releases the caller's reference on the string. Deleting the
// zero HString is a no-op.
func (h HString) Delete() {
	if h == 0 {
		return
	}
	lib, err := LoadCombase()
	if err != nil {
		return
	}
	lib.windowsDeleteString.Call(uintptr(h))
}

// Duplicate takes an additional reference on the string.
func (h HString) Duplicate() (HString, error) {
	lib, err := LoadCombase()
	if err != nil {
		return 0, err
	}

	var dup HString
	ret, _, _ := lib.windowsDuplicateString.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&dup)),
	)

	if err := ResultError(ret); err != nil {
		return 0, fmt.Errorf("com: WindowsDuplicateString failed: %w", err)
	}
	return dup, nil
}

// Len returns the string's length in UTF-16 code units.
func (h HString) Len() int {
	if h == 0 {
		return 0
	}
	lib, err := LoadCombase()
	if err != nil {
		return 0
	}
	ret, _, _ := lib.windowsGetStringLen.Call(uintptr(h))
	return int(uint32(ret))
}

// String returns the contents as a Go string. The raw buffer is owned
// by the platform string and only borrowed for the conversion.
func (h HString) String() string {
	if h == 0 {
		return ""
	}
	lib, err := LoadCombase()
	if err != nil {
		return ""
	}

	var length uint32
	ret, _, _ := lib.windowsGetStringRawBuffer.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&length)),
	)
	if ret == 0 || length == 0 {
		return ""
	}

	buf := unsafe.Slice((*uint16)(unsafe.Pointer(ret)), length)
	return windows.UTF16ToString(buf)
}
