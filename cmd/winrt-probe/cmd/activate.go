// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/winrt"
	"github.com/gogpu/winrt/com"
)

var activateIID string

var activateCmd = &cobra.Command{
	Use:   "activate <class>",
	Short: "Check that an activation factory is registered",
	Long: `Acquire the activation factory for a fully-qualified runtime class
name and report the interfaces it exposes.

Examples:

  winrt-probe activate Windows.Foundation.Uri
  winrt-probe activate Windows.Data.Json.JsonObject --iid 2289F159-54DE-45D8-ABCC-22603FA066A0`,
	Args: cobra.ExactArgs(1),
	RunE: probeActivate,
}

func init() {
	rootCmd.AddCommand(activateCmd)

	activateCmd.Flags().StringVar(&activateIID, "iid", "", "additionally cast the factory to this interface identity")
}

func probeActivate(cmd *cobra.Command, args []string) error {
	return onApartment(func() error {
		factory, err := winrt.ActivationFactory(args[0])
		if err != nil {
			return err
		}
		defer factory.Release()

		fmt.Printf("%s: factory acquired\n", args[0])

		for _, probe := range []struct {
			name string
			iid  com.GUID
		}{
			{"IInspectable", com.IID_IInspectable},
			{"IAgileObject", com.IID_IAgileObject},
		} {
			v, err := factory.Cast(probe.iid)
			switch {
			case err == nil:
				fmt.Printf("  %-14s yes\n", probe.name)
				v.Release()
			case errors.Is(err, winrt.ErrNoInterface):
				fmt.Printf("  %-14s no\n", probe.name)
			default:
				return err
			}
		}

		if activateIID != "" {
			iid, err := com.GUIDFromString(activateIID)
			if err != nil {
				return err
			}
			v, err := factory.Cast(iid)
			if err != nil {
				return err
			}
			fmt.Printf("  %-14s yes\n", iid)
			v.Release()
		}
		return nil
	})
}
