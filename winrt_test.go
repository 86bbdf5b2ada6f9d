// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt_test

import (
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/gogpu/winrt/com"
)

// fakeCom is a host-side component double: a real vtable whose slots
// are syscall.NewCallback trampolines, so the engine's indirect calls
// exercise the same machinery they would against a platform object.
// State is looked up from the receiver pointer through a registry, the
// same way the Metal backend resolves block trampolines.
type fakeCom struct {
	refs  int32
	vtbl  []uintptr
	hdr   *fakeHeader
	qi    map[com.GUID]*fakeCom // identity -> interface object
	calls map[int]*int32        // slot -> invocation count
}

// fakeHeader is the object layout the engine sees: first word vtable.
type fakeHeader struct {
	vtbl *uintptr
}

var fakeRegistry sync.Map // uintptr -> *fakeCom

var (
	fakeTrioOnce sync.Once
	fakeQIPtr    uintptr
	fakeAddRef   uintptr
	fakeRelease  uintptr
)

func lookupFake(this uintptr) *fakeCom {
	v, ok := fakeRegistry.Load(this)
	if !ok {
		return nil
	}
	return v.(*fakeCom)
}

func initFakeTrio() {
	fakeTrioOnce.Do(func() {
		fakeQIPtr = syscall.NewCallback(func(this, riid, out uintptr) uintptr {
			f := lookupFake(this)
			if f == nil {
				return uintptr(com.E_FAIL)
			}
			iid := *(*com.GUID)(unsafe.Pointer(riid))
			target, ok := f.qi[iid]
			if !ok {
				return uintptr(com.E_NOINTERFACE)
			}
			atomic.AddInt32(&target.refs, 1)
			*(*uintptr)(unsafe.Pointer(out)) = target.this()
			return 0
		})
		fakeAddRef = syscall.NewCallback(func(this uintptr) uintptr {
			f := lookupFake(this)
			return uintptr(atomic.AddInt32(&f.refs, 1))
		})
		fakeRelease = syscall.NewCallback(func(this uintptr) uintptr {
			f := lookupFake(this)
			return uintptr(atomic.AddInt32(&f.refs, -1))
		})
	})
}

// newFake builds a component double with nSlots vtable entries, the
// base trio installed, and one initial reference (the one an adopting
// Value takes over). methods maps user slots to callback pointers.
func newFake(nSlots int, methods map[int]uintptr) *fakeCom {
	initFakeTrio()

	f := &fakeCom{
		refs:  1,
		vtbl:  make([]uintptr, nSlots),
		qi:    make(map[com.GUID]*fakeCom),
		calls: make(map[int]*int32),
	}
	f.vtbl[com.SlotQueryInterface] = fakeQIPtr
	f.vtbl[com.SlotAddRef] = fakeAddRef
	f.vtbl[com.SlotRelease] = fakeRelease
	for slot, fn := range methods {
		f.vtbl[slot] = fn
		f.calls[slot] = new(int32)
	}

	f.hdr = &fakeHeader{vtbl: &f.vtbl[0]}
	fakeRegistry.Store(f.this(), f)

	// Every object answers for IUnknown with its own identity.
	f.qi[com.IID_IUnknown] = f
	return f
}

// expose registers f as the object answering QueryInterface for iid.
// Passing f itself models a single-identity object; passing another
// fake models a distinct interface pointer on the same component.
func (f *fakeCom) expose(iid com.GUID, target *fakeCom) {
	f.qi[iid] = target
}

// this returns the receiver pointer the engine dispatches on.
func (f *fakeCom) this() uintptr {
	return uintptr(unsafe.Pointer(f.hdr))
}

// ptr returns this as an unsafe.Pointer for value construction.
func (f *fakeCom) ptr() unsafe.Pointer {
	return unsafe.Pointer(f.hdr)
}

// refCount reads the current reference count.
func (f *fakeCom) refCount() int32 {
	return atomic.LoadInt32(&f.refs)
}

// callCount reads how many times the method at slot ran.
func (f *fakeCom) callCount(slot int) int32 {
	c, ok := f.calls[slot]
	if !ok {
		return 0
	}
	return atomic.LoadInt32(c)
}

// record bumps the invocation counter for slot.
func (f *fakeCom) record(slot int) {
	if c, ok := f.calls[slot]; ok {
		atomic.AddInt32(c, 1)
	}
}

// Shared test identities.
var (
	iidWidget = com.GUID{Data1: 0x11111111, Data2: 0x2222, Data3: 0x3333,
		Data4: [8]byte{0x44, 0x44, 0x55, 0x55, 0x66, 0x66, 0x77, 0x77}}
	iidGadget = com.GUID{Data1: 0x88888888, Data2: 0x9999, Data3: 0xAAAA,
		Data4: [8]byte{0xBB, 0xBB, 0xCC, 0xCC, 0xDD, 0xDD, 0xEE, 0xEE}}
	iidUnrelated = com.GUID{Data1: 0xDEADBEEF, Data2: 0xFEED, Data3: 0xFACE,
		Data4: [8]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}}
)
