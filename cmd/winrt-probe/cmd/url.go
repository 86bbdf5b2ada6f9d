// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/winrt"
	"github.com/gogpu/winrt/com"
)

// iidUriFactory is IUriRuntimeClassFactory, the factory interface of
// Windows.Foundation.Uri.
// {44A9796F-723E-4FDF-A218-033E75B0C084}
var iidUriFactory = com.GUID{
	Data1: 0x44A9796F,
	Data2: 0x723E,
	Data3: 0x4FDF,
	Data4: [8]byte{0xA2, 0x18, 0x03, 0x3E, 0x75, 0xB0, 0xC0, 0x84},
}

// Windows.Foundation.Uri vtable positions used by the probe.
const (
	uriFactoryCreateUriSlot = 6  // IUriRuntimeClassFactory.CreateUri
	uriAbsoluteUriSlot      = 6  // IUriRuntimeClass.get_AbsoluteUri
	uriDomainSlot           = 8  // IUriRuntimeClass.get_Domain
	uriHostSlot             = 11 // IUriRuntimeClass.get_Host
)

var urlCmd = &cobra.Command{
	Use:   "url <uri>",
	Short: "Parse a URI through Windows.Foundation.Uri",
	Long: `Activate the Windows.Foundation.Uri factory, create a Uri object from
the given string entirely through descriptor-driven dispatch, and print
the properties the platform parsed out of it.

Example:

  winrt-probe url https://example.com/path`,
	Args: cobra.ExactArgs(1),
	RunE: probeURL,
}

func init() {
	rootCmd.AddCommand(urlCmd)
}

func probeURL(cmd *cobra.Command, args []string) error {
	return onApartment(func() error {
		factory, err := winrt.ActivationFactory("Windows.Foundation.Uri")
		if err != nil {
			return err
		}
		defer factory.Release()

		uriFactory, err := factory.Cast(iidUriFactory)
		if err != nil {
			return err
		}
		defer uriFactory.Release()

		raw, err := winrt.StringValue(args[0])
		if err != nil {
			return err
		}
		defer raw.Release()

		uri, err := winrt.CallSingleOut(uriFactory, uriFactoryCreateUriSlot, winrt.TypeHandle, raw)
		if err != nil {
			return fmt.Errorf("CreateUri(%q): %w", args[0], err)
		}
		defer uri.Release()

		for _, prop := range []struct {
			name string
			slot int
		}{
			{"AbsoluteUri", uriAbsoluteUriSlot},
			{"Domain", uriDomainSlot},
			{"Host", uriHostSlot},
		} {
			v, err := uri.Get(prop.slot, winrt.TypeString)
			if err != nil {
				return fmt.Errorf("get_%s: %w", prop.name, err)
			}
			fmt.Printf("%-12s %s\n", prop.name, v.Str())
			v.Release()
		}
		return nil
	})
}
