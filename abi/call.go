// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package abi

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// CallInterface is a prepared indirect-call descriptor: an ordered list
// of argument kinds plus a 32-bit status return. It is built once when
// a method descriptor is finalized and reused for every invocation.
//
// goffi expects args[] to contain pointers to WHERE argument values are
// stored, not the values themselves. Invoke follows that convention:
// callers pass the address of each argument's storage, including for
// pointer-typed arguments (pointer TO the pointer).
type CallInterface struct {
	cif   types.CallInterface
	kinds []Kind
}

// typeDescriptor maps a Kind to its goffi type descriptor.
func typeDescriptor(k Kind) *types.TypeDescriptor {
	switch k {
	case KindI32:
		return types.UInt32TypeDescriptor
	case KindI64:
		return types.UInt64TypeDescriptor
	default:
		return types.PointerTypeDescriptor
	}
}

// Prepare builds a call interface for the given argument kinds.
// The return type is always a 32-bit status word.
func Prepare(kinds []Kind) (*CallInterface, error) {
	argTypes := make([]*types.TypeDescriptor, len(kinds))
	for i, k := range kinds {
		argTypes[i] = typeDescriptor(k)
	}

	ci := &CallInterface{kinds: append([]Kind(nil), kinds...)}
	if err := ffi.PrepareCallInterface(&ci.cif, types.DefaultCall,
		types.UInt32TypeDescriptor, argTypes); err != nil {
		return nil, fmt.Errorf("abi: failed to prepare call interface: %w", err)
	}
	return ci, nil
}

// Kinds returns the argument kind sequence the interface was prepared
// with, in call order.
func (ci *CallInterface) Kinds() []Kind { return ci.kinds }

// Invoke performs the indirect call through fn. args must hold one
// storage address per prepared kind, in call order. The returned word
// is the callee's 32-bit status code.
func (ci *CallInterface) Invoke(fn unsafe.Pointer, args []unsafe.Pointer) (uint32, error) {
	if len(args) != len(ci.kinds) {
		return 0, fmt.Errorf("abi: call interface expects %d args, got %d", len(ci.kinds), len(args))
	}

	var status uint32
	if err := ffi.CallFunction(&ci.cif, fn, unsafe.Pointer(&status), args); err != nil {
		return 0, fmt.Errorf("abi: indirect call failed: %w", err)
	}
	return status, nil
}
