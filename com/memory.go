// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package com

import (
	"sync"
	"syscall"
)

var (
	ole32Lib  *ole32
	ole32Once sync.Once
)

type ole32 struct {
	dll           *syscall.LazyDLL
	coTaskMemFree *syscall.LazyProc
}

func loadOle32() *ole32 {
	ole32Once.Do(func() {
		dll := syscall.NewLazyDLL("ole32.dll")
		ole32Lib = &ole32{
			dll:           dll,
			coTaskMemFree: dll.NewProc("CoTaskMemFree"),
		}
	})
	return ole32Lib
}

// TaskMemFree frees a buffer allocated by the platform's task
// allocator, such as the arrays callees hand back through out
// parameters. Freeing the zero pointer is a no-op.
func TaskMemFree(ptr uintptr) {
	if ptr == 0 {
		return
	}
	loadOle32().coTaskMemFree.Call(ptr)
}
