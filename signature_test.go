// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/winrt"
	"github.com/gogpu/winrt/abi"
)

func TestInterfaceSlotAssignment(t *testing.T) {
	tests := []struct {
		name  string
		kind  winrt.InterfaceKind
		first int
	}{
		{"plain COM reserves the base trio", winrt.KindCOM, 3},
		{"extended reserves the inspection slots too", winrt.KindWinRT, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := winrt.NewInterface(iidWidget, tt.kind).
				Method(winrt.NewMethod().Out(winrt.TypeString)).
				Method(winrt.NewMethod().In(winrt.TypeI32).Out(winrt.TypeHandle)).
				Build()
			require.NoError(t, err)

			assert.Equal(t, 2, desc.NumMethods())
			assert.Equal(t, tt.first, desc.Method(0).Slot())
			assert.Equal(t, tt.first+1, desc.Method(1).Slot())
		})
	}
}

func TestInterfaceEqualityByIIDOnly(t *testing.T) {
	a, err := winrt.NewInterface(iidWidget, winrt.KindWinRT).
		Method(winrt.NewMethod().Out(winrt.TypeString)).
		Build()
	require.NoError(t, err)

	// Same identity, entirely different method list.
	b, err := winrt.NewInterface(iidWidget, winrt.KindCOM).Build()
	require.NoError(t, err)

	c, err := winrt.NewInterface(iidGadget, winrt.KindWinRT).
		Method(winrt.NewMethod().Out(winrt.TypeString)).
		Build()
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestMethodArgKinds(t *testing.T) {
	m, err := winrt.NewMethod().
		In(winrt.TypeI32).
		In(winrt.TypeString).
		Out(winrt.TypeI64).
		In(winrt.TypeI64).
		Out(winrt.TypeHandle).
		Build(6)
	require.NoError(t, err)

	assert.Equal(t, 3, m.NumIn())
	assert.Equal(t, 2, m.NumOut())

	// Receiver first; out parameters contribute a pointer kind
	// regardless of their pointee.
	want := []abi.Kind{abi.KindPtr, abi.KindI32, abi.KindPtr, abi.KindPtr, abi.KindI64, abi.KindPtr}
	assert.Equal(t, want, m.ArgKinds())
}

// TestDescriptorEquivalence checks that two descriptors built from
// identical parameter lists at the same slot produce byte-identical
// argument layouts.
func TestDescriptorEquivalence(t *testing.T) {
	build := func() *winrt.MethodDesc {
		m, err := winrt.NewMethod().
			In(winrt.TypeString).
			Out(winrt.OutSlotType(winrt.TypeI32)).
			Build(8)
		require.NoError(t, err)
		return m
	}

	a, b := build(), build()
	assert.Equal(t, a.Slot(), b.Slot())
	assert.Equal(t, a.ArgKinds(), b.ArgKinds())
	assert.Equal(t, a.Params(), b.Params())
}

func TestMethodBuilderRejectsNegativeSlot(t *testing.T) {
	_, err := winrt.NewMethod().Build(-1)
	assert.Error(t, err)
}
