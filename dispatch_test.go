// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt_test

import (
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/winrt"
	"github.com/gogpu/winrt/com"
)

// echoI32 builds a callback for HRESULT Method(this, int32 in, int32* out).
func echoI32(slot int) uintptr {
	return syscall.NewCallback(func(this, in, out uintptr) uintptr {
		lookupFake(this).record(slot)
		*(*int32)(unsafe.Pointer(out)) = int32(in)
		return 0
	})
}

func TestCallDynamicTypeMismatch(t *testing.T) {
	obj := newFake(4, map[int]uintptr{3: echoI32(3)})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	m, err := winrt.NewMethod().In(winrt.TypeI32).Out(winrt.TypeI32).Build(3)
	require.NoError(t, err)

	str, err := winrt.StringValue("not a number")
	require.NoError(t, err)
	defer str.Release()

	_, err = winrt.CallDynamic(m, recv, []*winrt.Value{str})
	require.ErrorIs(t, err, winrt.ErrTypeMismatch)
	assert.EqualValues(t, 0, obj.callCount(3), "no indirect call may be performed")

	// Arity mismatch is detected before any call as well.
	_, err = winrt.CallDynamic(m, recv, nil)
	require.ErrorIs(t, err, winrt.ErrTypeMismatch)
	assert.EqualValues(t, 0, obj.callCount(3))
}

func TestCallDynamicRoundTripI32(t *testing.T) {
	obj := newFake(4, map[int]uintptr{3: echoI32(3)})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	desc, err := winrt.NewInterface(iidWidget, winrt.KindCOM).
		Method(winrt.NewMethod().In(winrt.TypeI32).Out(winrt.TypeI32)).
		Build()
	require.NoError(t, err)
	require.Equal(t, 3, desc.Method(0).Slot())

	outs, err := winrt.CallDynamic(desc.Method(0), recv, []*winrt.Value{winrt.I32Value(-123456)})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.EqualValues(t, -123456, outs[0].I32())
	assert.EqualValues(t, 1, obj.callCount(3))
}

func TestCallDynamicRoundTripI64(t *testing.T) {
	slot := 3
	echo := syscall.NewCallback(func(this, in, out uintptr) uintptr {
		lookupFake(this).record(slot)
		*(*int64)(unsafe.Pointer(out)) = int64(in)
		return 0
	})
	obj := newFake(4, map[int]uintptr{slot: echo})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	m, err := winrt.NewMethod().In(winrt.TypeI64).Out(winrt.TypeI64).Build(slot)
	require.NoError(t, err)

	const want = int64(0x1122334455667788)
	outs, err := winrt.CallDynamic(m, recv, []*winrt.Value{winrt.I64Value(want)})
	require.NoError(t, err)
	assert.Equal(t, want, outs[0].I64())
}

func TestCallDynamicRoundTripHandle(t *testing.T) {
	slot := 3
	echo := syscall.NewCallback(func(this, in, out uintptr) uintptr {
		lookupFake(this).record(slot)
		// Ownership of the out reference belongs to the caller.
		com.AddRef(unsafe.Pointer(in))
		*(*uintptr)(unsafe.Pointer(out)) = in
		return 0
	})
	obj := newFake(4, map[int]uintptr{slot: echo})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	payload := newFake(3, nil)
	in := winrt.HandleValue(payload.ptr())

	m, err := winrt.NewMethod().In(winrt.TypeHandle).Out(winrt.TypeHandle).Build(slot)
	require.NoError(t, err)

	outs, err := winrt.CallDynamic(m, recv, []*winrt.Value{in})
	require.NoError(t, err)
	assert.Equal(t, payload.ptr(), outs[0].Handle(), "identity of the underlying pointer")
	assert.EqualValues(t, 2, payload.refCount(), "in-value borrowed, out-value owned")

	outs[0].Release()
	in.Release()
	assert.EqualValues(t, 0, payload.refCount())
}

func TestCallDynamicRoundTripString(t *testing.T) {
	slot := 3
	echo := syscall.NewCallback(func(this, in, out uintptr) uintptr {
		lookupFake(this).record(slot)
		dup, err := com.HString(in).Duplicate()
		if err != nil {
			return uintptr(com.E_FAIL)
		}
		*(*com.HString)(unsafe.Pointer(out)) = dup
		return 0
	})
	obj := newFake(4, map[int]uintptr{slot: echo})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	m, err := winrt.NewMethod().In(winrt.TypeString).Out(winrt.TypeString).Build(slot)
	require.NoError(t, err)

	in, err := winrt.StringValue("https://example.com/path")
	require.NoError(t, err)
	defer in.Release()

	outs, err := winrt.CallDynamic(m, recv, []*winrt.Value{in})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", outs[0].Str(), "equality of contents")
	outs[0].Release()
}

func TestCallDynamicFailureStatus(t *testing.T) {
	slot := 3
	failing := syscall.NewCallback(func(this, out uintptr) uintptr {
		lookupFake(this).record(slot)
		// Even if the callee scribbled on the cell, failure discards it.
		*(*uintptr)(unsafe.Pointer(out)) = 0xBAD
		return uintptr(com.E_FAIL)
	})
	obj := newFake(4, map[int]uintptr{slot: failing})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	m, err := winrt.NewMethod().Out(winrt.TypeHandle).Build(slot)
	require.NoError(t, err)

	outs, err := winrt.CallDynamic(m, recv, nil)
	require.Error(t, err)
	assert.Nil(t, outs)

	var hr com.HRESULT
	require.ErrorAs(t, err, &hr)
	assert.Equal(t, com.E_FAIL, hr)
}

func TestCallDynamicReleasedReceiver(t *testing.T) {
	obj := newFake(4, map[int]uintptr{3: echoI32(3)})
	recv := winrt.HandleValue(obj.ptr())
	recv.Release()

	m, err := winrt.NewMethod().In(winrt.TypeI32).Out(winrt.TypeI32).Build(3)
	require.NoError(t, err)

	_, err = winrt.CallDynamic(m, recv, []*winrt.Value{winrt.I32Value(1)})
	assert.ErrorIs(t, err, winrt.ErrInvalidState)
}

func TestCallSingleOutShapes(t *testing.T) {
	getter := syscall.NewCallback(func(this, out uintptr) uintptr {
		lookupFake(this).record(6)
		*(*int32)(unsafe.Pointer(out)) = 42
		return 0
	})
	adder := syscall.NewCallback(func(this, a, b, out uintptr) uintptr {
		lookupFake(this).record(7)
		*(*int32)(unsafe.Pointer(out)) = int32(a) + int32(b)
		return 0
	})
	obj := newFake(8, map[int]uintptr{6: getter, 7: adder})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	// Zero in-values.
	v, err := winrt.CallSingleOut(recv, 6, winrt.TypeI32)
	require.NoError(t, err)
	assert.EqualValues(t, 42, v.I32())

	// Two in-values; repeated shapes hit the descriptor cache.
	for i := 0; i < 3; i++ {
		sum, err := winrt.CallSingleOut(recv, 7, winrt.TypeI32,
			winrt.I32Value(int32(i)), winrt.I32Value(10))
		require.NoError(t, err)
		assert.EqualValues(t, i+10, sum.I32())
	}
	assert.EqualValues(t, 3, obj.callCount(7))
}

func TestFastCallOutPointer(t *testing.T) {
	getter := syscall.NewCallback(func(this, out uintptr) uintptr {
		lookupFake(this).record(6)
		*(*int32)(unsafe.Pointer(out)) = 99
		return 0
	})
	obj := newFake(7, map[int]uintptr{6: getter})
	recv := winrt.HandleValue(obj.ptr())
	defer recv.Release()

	var got int32
	hr := winrt.FastCall1(recv, 6, uintptr(unsafe.Pointer(&got)))
	require.False(t, hr.Failed())
	assert.EqualValues(t, 99, got)
}
