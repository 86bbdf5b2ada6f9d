// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/gogpu/winrt/abi"
	"github.com/gogpu/winrt/com"
)

// outCellKind returns the ABI kind of the storage a callee writes for
// an out parameter of type t: the pointee's kind for an out slot, the
// type's own kind otherwise.
func outCellKind(t Type) abi.Kind {
	if elem, ok := t.Elem(); ok {
		return elem.ABIKind()
	}
	return t.ABIKind()
}

// CallDynamic dispatches a method described by m on the component
// handle wrapped by recv, with in as the caller-supplied values in
// parameter order. On success it returns the callee-written values, in
// parameter order, with ownership transferred to the caller. On
// failure nothing is returned and out storage is discarded unread.
//
// In-values are borrowed for the call's duration only; the caller
// keeps ownership and must still release them.
func CallDynamic(m *MethodDesc, recv *Value, in []*Value) ([]*Value, error) {
	if recv == nil || recv.released || recv.ptr == nil {
		return nil, ErrInvalidState
	}
	if len(in) != m.nIn {
		return nil, fmt.Errorf("%w: %d in-values for %d in-parameters",
			ErrTypeMismatch, len(in), m.nIn)
	}
	for i, p := 0, 0; p < len(m.params); p++ {
		if m.params[p].Dir != DirIn {
			continue
		}
		if in[i] == nil || !in[i].t.sameShape(m.params[p].Type) {
			return nil, fmt.Errorf("%w: parameter %d wants %s",
				ErrTypeMismatch, p, m.params[p].Type)
		}
		i++
	}

	// One argument cell per indirect-call argument (receiver first),
	// plus one storage cell per out parameter. Both stay reachable from
	// this frame for the duration of the call; Go heap objects do not
	// move, so the addresses handed to the callee stay valid.
	argCells := make([]abi.Cell, len(m.params)+1)
	outCells := make([]abi.Cell, m.nOut)
	args := make([]unsafe.Pointer, len(m.params)+1)

	argCells[0] = abi.NewCell(abi.KindPtr)
	*(*unsafe.Pointer)(argCells[0].Addr()) = recv.ptr
	args[0] = argCells[0].Addr()

	inIdx, outIdx := 0, 0
	for p, param := range m.params {
		if param.Dir == DirIn {
			argCells[p+1] = abi.NewCell(param.Type.ABIKind())
			if err := in[inIdx].writeCell(&argCells[p+1]); err != nil {
				return nil, err
			}
			inIdx++
		} else {
			outCells[outIdx] = abi.NewCell(outCellKind(param.Type))
			argCells[p+1] = abi.NewCell(abi.KindPtr)
			*(*unsafe.Pointer)(argCells[p+1].Addr()) = outCells[outIdx].Addr()
			outIdx++
		}
		args[p+1] = argCells[p+1].Addr()
	}

	fn := com.MethodPtr(recv.ptr, m.slot)
	status, err := m.ci.Invoke(fn, args)
	runtime.KeepAlive(recv)
	runtime.KeepAlive(in)
	if err != nil {
		return nil, err
	}

	hr := com.HRESULT(status)
	if hr.Failed() {
		dispatchLog().Debug("winrt: dispatch failed", "slot", m.slot, "hresult", uint32(hr))
		return nil, fmt.Errorf("winrt: method at slot %d failed: %w", m.slot, hr)
	}

	outs := make([]*Value, 0, m.nOut)
	outIdx = 0
	for _, param := range m.params {
		if param.Dir != DirOut {
			continue
		}
		v, err := valueFromCell(&outCells[outIdx], param.Type)
		if err != nil {
			for _, built := range outs {
				built.Release()
			}
			return nil, err
		}
		outs = append(outs, v)
		outIdx++
	}
	return outs, nil
}

// singleOutCache holds method descriptors built by CallSingleOut,
// keyed by slot and parameter shape. Prepared call interfaces are
// reusable across values, so the common getter shapes are built once.
var singleOutCache sync.Map // string -> *MethodDesc

func singleOutKey(slot int, out Type, in []*Value) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:", slot)
	for _, v := range in {
		b.WriteString(v.t.String())
		b.WriteByte(',')
	}
	b.WriteString("->")
	b.WriteString(out.String())
	return b.String()
}

// CallSingleOut dispatches the method at slot with zero or more
// in-values and a single out-parameter of type out, hiding descriptor
// construction for the common getter and factory shapes.
func CallSingleOut(recv *Value, slot int, out Type, in ...*Value) (*Value, error) {
	for _, v := range in {
		if v == nil {
			return nil, fmt.Errorf("%w: nil in-value", ErrTypeMismatch)
		}
	}

	key := singleOutKey(slot, out, in)
	var m *MethodDesc
	if cached, ok := singleOutCache.Load(key); ok {
		m = cached.(*MethodDesc)
	} else {
		b := NewMethod()
		for _, v := range in {
			b.In(v.t)
		}
		var err error
		m, err = b.Out(out).Build(slot)
		if err != nil {
			return nil, err
		}
		singleOutCache.Store(key, m)
	}

	outs, err := CallDynamic(m, recv, in)
	if err != nil {
		return nil, err
	}
	return outs[0], nil
}

// Get is the narrow single-out dispatch helper on a value: it invokes
// the method at slot expecting no in-parameters and one out-parameter
// of type out.
func (v *Value) Get(slot int, out Type) (*Value, error) {
	return CallSingleOut(v, slot, out)
}

// Invoke is the narrow raw dispatch helper on a value: it forwards up
// to three machine words to the method at slot and returns the status
// code. No cells are allocated; callers pass out-pointers directly and
// own whatever the callee writes through them.
func (v *Value) Invoke(slot int, args ...uintptr) com.HRESULT {
	if v.released || v.ptr == nil {
		return com.RO_E_CLOSED
	}
	return com.HRESULT(uint32(com.Call(v.ptr, slot, args...)))
}

// FastCall1 invokes the method at slot with the receiver and one raw
// argument, casting the vtable entry to that fixed shape. Typical for
// getters: the argument is the out-pointer.
func FastCall1(recv *Value, slot int, a uintptr) com.HRESULT {
	return recv.Invoke(slot, a)
}

// FastCall2 invokes the method at slot with two raw arguments.
func FastCall2(recv *Value, slot int, a, b uintptr) com.HRESULT {
	return recv.Invoke(slot, a, b)
}

// FastCall3 invokes the method at slot with three raw arguments.
func FastCall3(recv *Value, slot int, a, b, c uintptr) com.HRESULT {
	return recv.Invoke(slot, a, b, c)
}
