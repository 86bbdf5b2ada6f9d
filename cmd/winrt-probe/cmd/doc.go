// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cmd implements the winrt-probe subcommands.
package cmd
