// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package winrt

import (
	"fmt"

	"github.com/gogpu/winrt/com"
)

// Initialize enters the component runtime on the current thread.
// Idempotent; it must precede any dispatch on that thread. Handles
// crossing threads require both threads to have initialized
// compatibly — the engine does not enforce that.
func Initialize() error {
	if err := com.Initialize(); err != nil {
		return err
	}
	Logger().Debug("winrt: runtime initialized")
	return nil
}

// Uninitialize leaves the runtime on the current thread, balancing one
// successful Initialize.
func Uninitialize() {
	com.Uninitialize()
}

// Bootstrap initializes the optional platform-extension runtime
// (out-of-box runtime classes) for the given release. The bootstrapper
// DLL is resolved from the consumer-owned com.BootstrapDLLEnv
// environment variable when set. Failures surface as
// ErrBootstrapFailed.
func Bootstrap(majorMinor uint32, versionTag string, minVersion uint64) error {
	lib, err := com.LoadBootstrap()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrapFailed, err)
	}
	if err := lib.Bootstrap(majorMinor, versionTag, minVersion, com.BootstrapNone); err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrapFailed, err)
	}
	Logger().Info("winrt: platform extension bootstrapped",
		"release", majorMinor, "tag", versionTag)
	return nil
}

// BootstrapShutdown releases the dependency established by Bootstrap.
func BootstrapShutdown() {
	lib, err := com.LoadBootstrap()
	if err != nil {
		return
	}
	lib.Shutdown()
}
