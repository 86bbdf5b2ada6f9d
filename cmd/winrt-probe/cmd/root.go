// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/winrt"
	"github.com/gogpu/winrt/internal/apartment"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "winrt-probe",
	Short: "Probe live runtime classes through dynamic dispatch",
	Long: `winrt-probe drives the projection engine against the machine's
registered runtime classes. All component work runs on a single
OS-locked thread whose apartment is initialized once.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			winrt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// onApartment runs f on a fresh OS-locked thread whose runtime
// apartment has been initialized.
func onApartment(f func() error) error {
	t, err := apartment.New(winrt.Initialize)
	if err != nil {
		return err
	}
	defer t.Stop()
	return t.Call(f)
}
