// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt

import (
	"fmt"

	"github.com/gogpu/winrt/abi"
	"github.com/gogpu/winrt/com"
)

// Direction tags a method parameter as caller-supplied or
// callee-written.
type Direction uint8

const (
	// DirIn marks a caller-supplied parameter.
	DirIn Direction = iota
	// DirOut marks a callee-written parameter; the dispatcher passes
	// the address of a caller-owned cell in its place.
	DirOut
)

// Param is one typed, directionally-tagged method parameter.
type Param struct {
	Type Type
	Dir  Direction
}

// InterfaceKind determines the reserved vtable prefix before the first
// user method.
type InterfaceKind uint8

const (
	// KindCOM reserves the base-component trio (slots 0-2).
	KindCOM InterfaceKind = iota
	// KindWinRT additionally reserves the three inspection slots
	// (slots 3-5).
	KindWinRT
)

// BaseSlots returns the index of the first user method for the kind.
func (k InterfaceKind) BaseSlots() int {
	if k == KindWinRT {
		return com.BaseSlotsWinRT
	}
	return com.BaseSlotsCOM
}

// MethodDesc describes one dispatchable method: its ordered parameter
// list, its vtable slot, and the low-level call interface precomputed
// from them. The ABI signature is determined entirely by the parameter
// list and the owning interface's kind; nothing else is consulted at
// dispatch time.
type MethodDesc struct {
	slot   int
	params []Param
	nIn    int
	nOut   int
	ci     *abi.CallInterface
}

// Slot returns the method's vtable index.
func (m *MethodDesc) Slot() int { return m.slot }

// Params returns the ordered parameter list.
func (m *MethodDesc) Params() []Param { return m.params }

// NumIn returns the count of caller-supplied parameters.
func (m *MethodDesc) NumIn() int { return m.nIn }

// NumOut returns the count of callee-written parameters.
func (m *MethodDesc) NumOut() int { return m.nOut }

// ArgKinds returns the full indirect-call kind sequence: receiver
// pointer first, then each parameter in order, out parameters as
// pointers regardless of their pointee.
func (m *MethodDesc) ArgKinds() []abi.Kind { return m.ci.Kinds() }

// MethodBuilder accumulates parameters in call order.
type MethodBuilder struct {
	params []Param
}

// NewMethod starts an empty method descriptor.
func NewMethod() *MethodBuilder {
	return &MethodBuilder{}
}

// In appends a caller-supplied parameter of type t.
func (b *MethodBuilder) In(t Type) *MethodBuilder {
	b.params = append(b.params, Param{Type: t, Dir: DirIn})
	return b
}

// Out appends a callee-written parameter of type t.
func (b *MethodBuilder) Out(t Type) *MethodBuilder {
	b.params = append(b.params, Param{Type: t, Dir: DirOut})
	return b
}

// Build finalizes the descriptor at the given vtable slot, computing
// and caching the low-level call interface.
func (b *MethodBuilder) Build(slot int) (*MethodDesc, error) {
	if slot < 0 {
		return nil, fmt.Errorf("winrt: negative vtable slot %d", slot)
	}

	m := &MethodDesc{
		slot:   slot,
		params: append([]Param(nil), b.params...),
	}

	kinds := make([]abi.Kind, 0, len(m.params)+1)
	kinds = append(kinds, abi.KindPtr) // receiver
	for _, p := range m.params {
		if p.Dir == DirOut {
			kinds = append(kinds, abi.KindPtr)
			m.nOut++
			continue
		}
		kinds = append(kinds, p.Type.ABIKind())
		m.nIn++
	}

	ci, err := abi.Prepare(kinds)
	if err != nil {
		return nil, err
	}
	m.ci = ci
	return m, nil
}

// InterfaceDesc describes an interface: identity GUID, kind and
// ordered method list with assigned vtable slots. Two descriptors with
// the same identity describe the same interface contractually and are
// interchangeable for dispatch.
type InterfaceDesc struct {
	iid     com.GUID
	kind    InterfaceKind
	methods []*MethodDesc
}

// IID returns the interface identity.
func (d *InterfaceDesc) IID() com.GUID { return d.iid }

// Kind returns the interface kind.
func (d *InterfaceDesc) Kind() InterfaceKind { return d.kind }

// Method returns the i-th declared method descriptor.
func (d *InterfaceDesc) Method(i int) *MethodDesc { return d.methods[i] }

// NumMethods returns the declared method count.
func (d *InterfaceDesc) NumMethods() int { return len(d.methods) }

// Equal reports descriptor equality, which is by identity GUID only.
func (d *InterfaceDesc) Equal(o *InterfaceDesc) bool {
	return o != nil && d.iid == o.iid
}

// InterfaceBuilder declares an interface and appends its methods in
// vtable order.
type InterfaceBuilder struct {
	iid     com.GUID
	kind    InterfaceKind
	methods []*MethodBuilder
	err     error
}

// NewInterface starts an interface descriptor with the given identity
// and kind.
func NewInterface(iid com.GUID, kind InterfaceKind) *InterfaceBuilder {
	return &InterfaceBuilder{iid: iid, kind: kind}
}

// Method appends the next method in declaration order. Vtable slots
// are assigned sequentially from the kind's base offset at Build time.
func (b *InterfaceBuilder) Method(m *MethodBuilder) *InterfaceBuilder {
	b.methods = append(b.methods, m)
	return b
}

// Build finalizes the interface descriptor, assigning slot indices and
// precomputing every method's call interface.
func (b *InterfaceBuilder) Build() (*InterfaceDesc, error) {
	if b.err != nil {
		return nil, b.err
	}

	d := &InterfaceDesc{
		iid:     b.iid,
		kind:    b.kind,
		methods: make([]*MethodDesc, 0, len(b.methods)),
	}

	base := b.kind.BaseSlots()
	for i, mb := range b.methods {
		m, err := mb.Build(base + i)
		if err != nil {
			return nil, fmt.Errorf("winrt: interface %s method %d: %w", b.iid, i, err)
		}
		d.methods = append(d.methods, m)
	}
	return d, nil
}
