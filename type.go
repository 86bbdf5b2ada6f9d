// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt

import (
	"github.com/gogpu/winrt/abi"
	"github.com/gogpu/winrt/com"
)

// typeKind discriminates the closed Type variant set.
type typeKind uint8

const (
	kindI32 typeKind = iota
	kindI64
	kindHandle
	kindString
	kindStatus
	kindAsyncOp
	kindHandleArray
	kindOutSlot
)

// Type is a high-level type descriptor. The variant set is closed:
// primitives, the opaque component handle, the platform string, the
// platform status code, async operations, handle arrays and by-pointer
// out slots. Types are plain data and safe to share.
type Type struct {
	kind typeKind
	elem *Type    // OutSlot pointee
	iid  com.GUID // AsyncOp concrete interface identity
}

// Primitive and resource type descriptors.
var (
	// TypeI32 is a 32-bit integer.
	TypeI32 = Type{kind: kindI32}
	// TypeI64 is a 64-bit integer.
	TypeI64 = Type{kind: kindI64}
	// TypeHandle is an opaque component reference.
	TypeHandle = Type{kind: kindHandle}
	// TypeString is a platform-reference-counted string.
	TypeString = Type{kind: kindString}
	// TypeStatus is a platform status code.
	TypeStatus = Type{kind: kindStatus}
	// TypeHandleArray is a length-prefixed out-array of handles.
	TypeHandleArray = Type{kind: kindHandleArray}
)

// AsyncOpType describes a component handle known to implement the
// async-operation interface identified by iid. The identity is carried
// so that GetResults can later be dispatched against the concrete
// interface.
func AsyncOpType(iid com.GUID) Type {
	return Type{kind: kindAsyncOp, iid: iid}
}

// OutSlotType describes a by-pointer parameter whose pointee has type
// of. Its ABI kind is always pointer regardless of the pointee.
func OutSlotType(of Type) Type {
	elem := of
	return Type{kind: kindOutSlot, elem: &elem}
}

// ABIKind maps the descriptor to its machine-level parameter kind.
// The mapping is total: primitives map to their width, everything else
// to pointer.
func (t Type) ABIKind() abi.Kind {
	switch t.kind {
	case kindI32, kindStatus:
		return abi.KindI32
	case kindI64:
		return abi.KindI64
	default:
		return abi.KindPtr
	}
}

// Elem returns the pointee type of an OutSlot descriptor and whether
// the descriptor is an OutSlot.
func (t Type) Elem() (Type, bool) {
	if t.kind != kindOutSlot || t.elem == nil {
		return Type{}, false
	}
	return *t.elem, true
}

// IID returns the carried async-operation interface identity and
// whether the descriptor carries one.
func (t Type) IID() (com.GUID, bool) {
	if t.kind != kindAsyncOp {
		return com.GUID{}, false
	}
	return t.iid, true
}

// String returns the descriptor name for diagnostics.
func (t Type) String() string {
	switch t.kind {
	case kindI32:
		return "i32"
	case kindI64:
		return "i64"
	case kindHandle:
		return "handle"
	case kindString:
		return "string"
	case kindStatus:
		return "status"
	case kindAsyncOp:
		return "asyncop(" + t.iid.String() + ")"
	case kindHandleArray:
		return "handle[]"
	case kindOutSlot:
		if t.elem != nil {
			return "out(" + t.elem.String() + ")"
		}
		return "out(?)"
	}
	return "invalid"
}

// sameShape reports whether two descriptors marshal identically: same
// variant and, for out slots, same pointee shape. Async identities do
// not participate — an AsyncOp marshals as a handle regardless of IID.
func (t Type) sameShape(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	if t.kind == kindOutSlot {
		te, _ := t.Elem()
		oe, ok := o.Elem()
		return ok && te.sameShape(oe)
	}
	return true
}
