// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

// winrt-probe exercises the projection engine against live runtime
// classes: activate factories, create objects through descriptor-driven
// dispatch and inspect the results.
package main

import (
	"os"

	"github.com/gogpu/winrt/cmd/winrt-probe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
