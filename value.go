// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/gogpu/winrt/abi"
	"github.com/gogpu/winrt/com"
)

// Value is a tagged engine value paired with ownership of the platform
// resource it wraps. Handle and string values own exactly one platform
// reference; Release drops it, Clone takes another. Plain data values
// (integers, status codes) carry no resource.
//
// Whether Release must run on the apartment that produced a handle is
// not enforced; the engine forwards releases from whichever goroutine
// holds the value, as the platform permits for agile objects.
type Value struct {
	t        Type
	num      int64
	ptr      unsafe.Pointer
	str      com.HString
	arr      []unsafe.Pointer
	released bool
}

// I32Value wraps a 32-bit integer.
func I32Value(v int32) *Value {
	return &Value{t: TypeI32, num: int64(v)}
}

// I64Value wraps a 64-bit integer.
func I64Value(v int64) *Value {
	return &Value{t: TypeI64, num: v}
}

// StatusValue wraps a platform status code.
func StatusValue(code com.HRESULT) *Value {
	return &Value{t: TypeStatus, num: int64(int32(uint32(code)))}
}

// HandleValue adopts an already-incremented reference on raw. The
// value owns that reference; no additional count is taken.
func HandleValue(raw unsafe.Pointer) *Value {
	return &Value{t: TypeHandle, ptr: raw}
}

// AsyncOpValue adopts a reference on a handle known to implement the
// async-operation interface identified by iid. The identity is kept
// for later GetResults dispatch.
func AsyncOpValue(raw unsafe.Pointer, iid com.GUID) *Value {
	return &Value{t: AsyncOpType(iid), ptr: raw}
}

// HandleArrayValue adopts one already-incremented reference per
// non-nil entry of handles. The value owns the slice; Release drops
// every reference it holds.
func HandleArrayValue(handles []unsafe.Pointer) *Value {
	return &Value{t: TypeHandleArray, arr: handles}
}

// StringValue creates a platform string with the contents of s and
// wraps the new reference.
func StringValue(s string) (*Value, error) {
	h, err := com.NewHString(s)
	if err != nil {
		return nil, err
	}
	return &Value{t: TypeString, str: h}, nil
}

// adoptString wraps an HSTRING reference transferred by a callee.
func adoptString(h com.HString) *Value {
	return &Value{t: TypeString, str: h}
}

// Type returns the value's type descriptor.
func (v *Value) Type() Type { return v.t }

// I32 returns the wrapped 32-bit integer. Zero for other variants.
func (v *Value) I32() int32 { return int32(v.num) }

// I64 returns the wrapped 64-bit integer. Zero for other variants.
func (v *Value) I64() int64 { return v.num }

// Status returns the wrapped platform status code.
func (v *Value) Status() com.HRESULT { return com.HRESULT(uint32(int32(v.num))) }

// Handle returns the raw component pointer of a handle-bearing value.
func (v *Value) Handle() unsafe.Pointer { return v.ptr }

// HString returns the wrapped platform string reference.
func (v *Value) HString() com.HString { return v.str }

// Str returns the contents of a string value as a Go string.
func (v *Value) Str() string { return v.str.String() }

// Handles returns the wrapped handle array. The slice is owned by the
// value; the handles it holds are released with it.
func (v *Value) Handles() []unsafe.Pointer { return v.arr }

// Clone takes an additional platform reference and returns a new
// owning value. Cloning plain data copies it. Clone of a released
// value returns nil.
func (v *Value) Clone() *Value {
	if v.released {
		return nil
	}
	switch v.t.kind {
	case kindHandle, kindAsyncOp:
		if v.ptr != nil {
			com.AddRef(v.ptr)
		}
		return &Value{t: v.t, ptr: v.ptr}
	case kindString:
		dup, err := v.str.Duplicate()
		if err != nil {
			// Duplication of a live HSTRING does not fail in practice;
			// an empty clone keeps the contract infallible.
			dup = 0
		}
		return &Value{t: v.t, str: dup}
	case kindHandleArray:
		arr := make([]unsafe.Pointer, len(v.arr))
		copy(arr, v.arr)
		for _, h := range arr {
			if h != nil {
				com.AddRef(h)
			}
		}
		return &Value{t: v.t, arr: arr}
	default:
		return &Value{t: v.t, num: v.num}
	}
}

// Release drops the value's platform references. Releasing twice is a
// no-op; every reference is released exactly once.
func (v *Value) Release() {
	if v == nil || v.released {
		return
	}
	v.released = true

	switch v.t.kind {
	case kindHandle, kindAsyncOp:
		if v.ptr != nil {
			com.Release(v.ptr)
			v.ptr = nil
		}
	case kindString:
		v.str.Delete()
		v.str = 0
	case kindHandleArray:
		for _, h := range v.arr {
			if h != nil {
				com.Release(h)
			}
		}
		v.arr = nil
	}
}

// Cast performs the platform query-interface protocol against the
// wrapped handle and returns a new owning value for the target
// identity. ErrNoInterface reports a component that does not expose
// the identity; the receiver stays valid either way.
func (v *Value) Cast(iid com.GUID) (*Value, error) {
	if v.released || v.ptr == nil {
		return nil, ErrInvalidState
	}

	out, err := com.QueryInterface(v.ptr, iid)
	if err != nil {
		var hr com.HRESULT
		if errors.As(err, &hr) && hr == com.E_NOINTERFACE {
			return nil, fmt.Errorf("%w: %s", ErrNoInterface, iid)
		}
		return nil, err
	}

	dispatchLog().Debug("winrt: cast", "iid", iid.String())
	return HandleValue(out), nil
}

// ActivationFactory acquires the activation factory registered for the
// fully-qualified class name and wraps it as a handle value. The
// generic IActivationFactory identity is requested; cast the result to
// the concrete factory interface as needed.
func ActivationFactory(className string) (*Value, error) {
	ptr, err := com.GetActivationFactory(className, com.IID_IActivationFactory)
	if err != nil {
		var hr com.HRESULT
		if errors.As(err, &hr) && hr == com.REGDB_E_CLASSNOTREG {
			return nil, fmt.Errorf("%w: %s", ErrClassNotRegistered, className)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrActivationFailed, className, err)
	}

	Logger().Debug("winrt: activation factory acquired", "class", className)
	return HandleValue(ptr), nil
}

// writeCell writes the value's ABI representation into a cell of the
// matching kind. Handle and string pointers are written without
// transferring ownership: the value keeps its reference for the call's
// duration.
func (v *Value) writeCell(c *abi.Cell) error {
	if v.released {
		return ErrInvalidState
	}
	if c.Kind() != v.t.ABIKind() {
		return fmt.Errorf("%w: %s value in %s cell", ErrTypeMismatch, v.t, c.Kind())
	}

	switch c.Kind() {
	case abi.KindI32:
		*(*int32)(c.Addr()) = int32(v.num)
	case abi.KindI64:
		*(*int64)(c.Addr()) = v.num
	default:
		switch v.t.kind {
		case kindString:
			*(*com.HString)(c.Addr()) = v.str
		default:
			*(*unsafe.Pointer)(c.Addr()) = v.ptr
		}
	}
	return nil
}

// valueFromCell synthesizes a value from a post-call cell. For handle,
// string and async variants the cell contents are treated as ownership
// transferred by the callee: no extra reference is taken. Handle
// arrays arrive as a pointer to a length-prefixed platform buffer (a
// 32-bit count followed by the handle words); the handles are adopted
// and the buffer itself returned to the platform allocator.
func valueFromCell(c *abi.Cell, t Type) (*Value, error) {
	if elem, ok := t.Elem(); ok {
		t = elem
	}
	if c.Kind() != t.ABIKind() {
		return nil, fmt.Errorf("%w: %s cell as %s", ErrTypeMismatch, c.Kind(), t)
	}

	switch t.kind {
	case kindI32:
		return I32Value(c.I32()), nil
	case kindI64:
		return I64Value(c.I64()), nil
	case kindStatus:
		return StatusValue(com.HRESULT(uint32(c.I32()))), nil
	case kindString:
		return adoptString(com.HString(c.Ptr())), nil
	case kindAsyncOp:
		iid, _ := t.IID()
		return AsyncOpValue(unsafe.Pointer(c.Ptr()), iid), nil
	case kindHandleArray:
		return adoptHandleArray(c.Ptr()), nil
	case kindHandle:
		return HandleValue(unsafe.Pointer(c.Ptr())), nil
	}
	return nil, fmt.Errorf("%w: cannot materialize %s", ErrTypeMismatch, t)
}

// adoptHandleArray copies the handles out of a length-prefixed platform
// buffer, adopting the references the callee transferred, then frees
// the buffer.
func adoptHandleArray(buf uintptr) *Value {
	v := &Value{t: TypeHandleArray}
	if buf == 0 {
		return v
	}

	count := *(*uint32)(unsafe.Pointer(buf))
	if count > 0 {
		words := unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(buf+unsafe.Sizeof(uintptr(0)))), count)
		v.arr = make([]unsafe.Pointer, count)
		copy(v.arr, words)
	}
	com.TaskMemFree(buf)
	return v
}
