// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package com

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"
)

var (
	combaseLib  *CombaseLib
	combaseOnce sync.Once
	combaseErr  error
)

// CombaseLib provides access to the Windows Runtime base functions in
// combase.dll.
type CombaseLib struct {
	dll *syscall.LazyDLL

	roInitialize              *syscall.LazyProc
	roUninitialize            *syscall.LazyProc
	roGetActivationFactory    *syscall.LazyProc
	windowsCreateString       *syscall.LazyProc
	windowsDeleteString       *syscall.LazyProc
	windowsDuplicateString    *syscall.LazyProc
	windowsGetStringRawBuffer *syscall.LazyProc
	windowsGetStringLen       *syscall.LazyProc
}

// LoadCombase loads combase.dll. Safe to call multiple times.
func LoadCombase() (*CombaseLib, error) {
	combaseOnce.Do(func() {
		combaseLib, combaseErr = loadCombaseInternal()
	})
	return combaseLib, combaseErr
}

func loadCombaseInternal() (*CombaseLib, error) {
	dll := syscall.NewLazyDLL("combase.dll")
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("failed to load combase.dll: %w", err)
	}

	lib := &CombaseLib{
		dll:                       dll,
		roInitialize:              dll.NewProc("RoInitialize"),
		roUninitialize:            dll.NewProc("RoUninitialize"),
		roGetActivationFactory:    dll.NewProc("RoGetActivationFactory"),
		windowsCreateString:       dll.NewProc("WindowsCreateString"),
		windowsDeleteString:       dll.NewProc("WindowsDeleteString"),
		windowsDuplicateString:    dll.NewProc("WindowsDuplicateString"),
		windowsGetStringRawBuffer: dll.NewProc("WindowsGetStringRawBuffer"),
		windowsGetStringLen:       dll.NewProc("WindowsGetStringLen"),
	}

	return lib, nil
}

// Apartment models for Initialize.
const (
	roInitSingleThreaded = 0
	roInitMultiThreaded  = 1
)

// Initialize enters the multithreaded apartment for the current
// thread. Idempotent: repeated calls (S_FALSE) succeed, as does a
// prior initialization in a compatible mode. Must run on every thread
// that dispatches component calls before the first dispatch.
func Initialize() error {
	lib, err := LoadCombase()
	if err != nil {
		return err
	}

	ret, _, _ := lib.roInitialize.Call(uintptr(roInitMultiThreaded))
	hr := HRESULT(uint32(ret))
	if hr == S_OK || hr == S_FALSE {
		return nil
	}
	return fmt.Errorf("com: RoInitialize failed: %w", hr)
}

// Uninitialize leaves the apartment entered by Initialize. Each
// successful Initialize should be balanced by one Uninitialize on the
// same thread; the final call tears down the thread's apartment.
func Uninitialize() {
	lib, err := LoadCombase()
	if err != nil {
		return
	}
	lib.roUninitialize.Call()
}

// GetActivationFactory acquires the activation factory registered for
// the fully-qualified runtime class name, asking for the interface
// identified by iid (IID_IActivationFactory for the generic factory).
// The returned pointer carries one reference the caller owns.
func GetActivationFactory(className string, iid GUID) (unsafe.Pointer, error) {
	lib, err := LoadCombase()
	if err != nil {
		return nil, err
	}

	name, err := NewHString(className)
	if err != nil {
		return nil, err
	}
	defer name.Delete()

	var factory unsafe.Pointer
	ret, _, _ := lib.roGetActivationFactory.Call(
		uintptr(name),
		uintptr(unsafe.Pointer(&iid)),
		uintptr(unsafe.Pointer(&factory)),
	)

	if err := ResultError(ret); err != nil {
		return nil, err
	}
	return factory, nil
}
