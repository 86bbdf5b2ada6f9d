// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package com

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// BootstrapDLLEnv names the environment variable consumers may set to
// point at the dynamic-dependency bootstrapper DLL. When unset, the
// default library name is resolved through the normal search path.
const BootstrapDLLEnv = "WINRT_BOOTSTRAP_DLL"

const bootstrapDLLDefault = "Microsoft.WindowsAppRuntime.Bootstrap.dll"

var (
	bootstrapLib  *BootstrapLib
	bootstrapOnce sync.Once
	bootstrapErr  error
)

// BootstrapLib provides access to the Windows App SDK bootstrap
// entrypoints. The bootstrapper wires the calling process to a
// framework package so that its out-of-box runtime classes resolve.
type BootstrapLib struct {
	dll *syscall.LazyDLL

	initialize2 *syscall.LazyProc
	shutdown    *syscall.LazyProc
}

// LoadBootstrap loads the bootstrapper DLL. Safe to call multiple times.
func LoadBootstrap() (*BootstrapLib, error) {
	bootstrapOnce.Do(func() {
		bootstrapLib, bootstrapErr = loadBootstrapInternal()
	})
	return bootstrapLib, bootstrapErr
}

func loadBootstrapInternal() (*BootstrapLib, error) {
	name := os.Getenv(BootstrapDLLEnv)
	if name == "" {
		name = bootstrapDLLDefault
	}

	dll := syscall.NewLazyDLL(name)
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	lib := &BootstrapLib{
		dll:         dll,
		initialize2: dll.NewProc("MddBootstrapInitialize2"),
		shutdown:    dll.NewProc("MddBootstrapShutdown"),
	}

	return lib, nil
}

// BootstrapOptions controls Initialize behavior.
type BootstrapOptions uint32

const (
	// BootstrapNone requests default failure behavior.
	BootstrapNone BootstrapOptions = 0
	// BootstrapOnNoMatchShowUI lets the bootstrapper direct the user
	// to install the runtime when no matching package is found.
	BootstrapOnNoMatchShowUI BootstrapOptions = 1 << 3
)

// Bootstrap initializes the dynamic-dependency bootstrapper for the
// given release: majorMinor packs the release major and minor versions
// into the high and low 16 bits, versionTag selects a preview channel
// ("" for stable) and minVersion is the minimum acceptable package
// version as a packed 4x16-bit tuple.
func (lib *BootstrapLib) Bootstrap(majorMinor uint32, versionTag string, minVersion uint64, options BootstrapOptions) error {
	var tag *uint16
	if versionTag != "" {
		var err error
		tag, err = windows.UTF16PtrFromString(versionTag)
		if err != nil {
			return fmt.Errorf("com: invalid version tag: %w", err)
		}
	}

	ret, _, _ := lib.initialize2.Call(
		uintptr(majorMinor),
		uintptr(unsafe.Pointer(tag)),
		uintptr(minVersion),
		uintptr(options),
	)

	if err := ResultError(ret); err != nil {
		return fmt.Errorf("com: MddBootstrapInitialize2 failed: %w", err)
	}
	return nil
}

// Shutdown releases the process's dynamic dependency on the framework
// package established by Bootstrap.
func (lib *BootstrapLib) Shutdown() {
	lib.shutdown.Call()
}
