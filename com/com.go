// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package com

import (
	"syscall"
	"unsafe"
)

// Base-component vtable slots shared by every interface.
const (
	SlotQueryInterface = 0
	SlotAddRef         = 1
	SlotRelease        = 2
)

// Reserved slot counts before the first user method.
const (
	// BaseSlotsCOM is the reserved prefix of a plain COM interface:
	// QueryInterface, AddRef, Release.
	BaseSlotsCOM = 3
	// BaseSlotsWinRT is the reserved prefix of an IInspectable-based
	// interface: the base trio plus GetIids, GetRuntimeClassName and
	// GetTrustLevel.
	BaseSlotsWinRT = 6
)

// MethodPtr returns the function pointer stored at slot of obj's
// vtable. obj's first word must be a vtable pointer.
func MethodPtr(obj unsafe.Pointer, slot int) unsafe.Pointer {
	vtbl := *(*unsafe.Pointer)(obj)
	return *(*unsafe.Pointer)(unsafe.Add(vtbl, slot*int(unsafe.Sizeof(uintptr(0)))))
}

// Method is MethodPtr as a raw word, for the syscall fast path.
func Method(obj unsafe.Pointer, slot int) uintptr {
	return uintptr(MethodPtr(obj, slot))
}

// Call invokes the method at slot with the receiver and up to three
// raw machine-word arguments. This is the fast path for methods whose
// shape the caller knows statically (typical getters: receiver plus an
// out-pointer); it allocates nothing and performs no marshalling.
func Call(obj unsafe.Pointer, slot int, args ...uintptr) uintptr {
	callArgs := make([]uintptr, 0, 4)
	callArgs = append(callArgs, uintptr(obj))
	callArgs = append(callArgs, args...)
	ret, _, _ := syscall.SyscallN(Method(obj, slot), callArgs...)
	return ret
}

// AddRef increments the object's reference count via vtable slot 1.
func AddRef(obj unsafe.Pointer) uint32 {
	ret, _, _ := syscall.SyscallN(Method(obj, SlotAddRef), uintptr(obj))
	return uint32(ret)
}

// Release decrements the object's reference count via vtable slot 2.
// Returns the remaining count as reported by the object.
func Release(obj unsafe.Pointer) uint32 {
	ret, _, _ := syscall.SyscallN(Method(obj, SlotRelease), uintptr(obj))
	return uint32(ret)
}

// QueryInterface asks the object for the interface identified by iid
// via vtable slot 0. On success the returned pointer carries a
// reference the caller owns. E_NOINTERFACE and other failures come
// back as HRESULT errors.
func QueryInterface(obj unsafe.Pointer, iid GUID) (unsafe.Pointer, error) {
	var out unsafe.Pointer

	ret, _, _ := syscall.SyscallN(
		Method(obj, SlotQueryInterface),
		uintptr(obj),
		uintptr(unsafe.Pointer(&iid)),
		uintptr(unsafe.Pointer(&out)),
	)

	if err := ResultError(ret); err != nil {
		return nil, err
	}
	return out, nil
}
