// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package com

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// GUID represents a Windows GUID (Globally Unique Identifier).
// Layout must match the Windows GUID structure exactly.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// GUIDFromString parses the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// form, with or without surrounding braces.
func GUIDFromString(s string) (GUID, error) {
	s = strings.TrimPrefix(strings.TrimSuffix(s, "}"), "{")
	parts := strings.Split(s, "-")
	if len(parts) != 5 || len(parts[0]) != 8 || len(parts[1]) != 4 ||
		len(parts[2]) != 4 || len(parts[3]) != 4 || len(parts[4]) != 12 {
		return GUID{}, fmt.Errorf("com: malformed GUID %q", s)
	}

	var raw [16]byte
	hex := parts[0] + parts[1] + parts[2] + parts[3] + parts[4]
	for i := 0; i < 16; i++ {
		var b byte
		if _, err := fmt.Sscanf(hex[i*2:i*2+2], "%02x", &b); err != nil {
			return GUID{}, fmt.Errorf("com: malformed GUID %q", s)
		}
		raw[i] = b
	}

	var g GUID
	g.Data1 = binary.BigEndian.Uint32(raw[0:4])
	g.Data2 = binary.BigEndian.Uint16(raw[4:6])
	g.Data3 = binary.BigEndian.Uint16(raw[6:8])
	copy(g.Data4[:], raw[8:16])
	return g, nil
}

// String returns the canonical textual form of the GUID.
func (g GUID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		g.Data1, g.Data2, g.Data3,
		g.Data4[0], g.Data4[1], g.Data4[2], g.Data4[3],
		g.Data4[4], g.Data4[5], g.Data4[6], g.Data4[7])
}

// IID_IUnknown is the interface ID for IUnknown.
// {00000000-0000-0000-C000-000000000046}
var IID_IUnknown = GUID{
	Data1: 0x00000000,
	Data2: 0x0000,
	Data3: 0x0000,
	Data4: [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46},
}

// IID_IInspectable is the interface ID for IInspectable.
// {AF86E2E0-B12D-4C6A-9C5A-D7AA65101E90}
var IID_IInspectable = GUID{
	Data1: 0xAF86E2E0,
	Data2: 0xB12D,
	Data3: 0x4C6A,
	Data4: [8]byte{0x9C, 0x5A, 0xD7, 0xAA, 0x65, 0x10, 0x1E, 0x90},
}

// IID_IActivationFactory is the interface ID for IActivationFactory.
// {00000035-0000-0000-C000-000000000046}
var IID_IActivationFactory = GUID{
	Data1: 0x00000035,
	Data2: 0x0000,
	Data3: 0x0000,
	Data4: [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46},
}

// IID_IAgileObject is the interface ID for IAgileObject.
// {94EA2B94-E9CC-49E0-C0FF-EE64CA8F5B90}
var IID_IAgileObject = GUID{
	Data1: 0x94EA2B94,
	Data2: 0xE9CC,
	Data3: 0x49E0,
	Data4: [8]byte{0xC0, 0xFF, 0xEE, 0x64, 0xCA, 0x8F, 0x5B, 0x90},
}

// IID_IAsyncInfo is the interface ID for IAsyncInfo.
// {00000036-0000-0000-C000-000000000046}
var IID_IAsyncInfo = GUID{
	Data1: 0x00000036,
	Data2: 0x0000,
	Data3: 0x0000,
	Data4: [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46},
}
