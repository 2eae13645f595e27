// Package main provides the ari CLI: conversion between ARI text, ARI
// CBOR, and nicknamed forms against a loaded ADM catalog, plus catalog
// consistency checking, schema export, and interactive browsing.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.amprs.dev/ari/log"
	"go.amprs.dev/ari/profile"
	"go.amprs.dev/ari/version"
)

func main() {
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "ari",
		Short:         "Work with AMP Resource Identifiers and Application Data Models",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logPublisher = log.NewPublisher()

			handler, err := logCfg.NewHandler(io.MultiWriter(os.Stderr, logPublisher))
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			setDefaultLogger(handler)

			profiler = profileCfg.NewProfiler()

			return profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logPublisher != nil {
				_ = logPublisher.Close()
			}

			if profiler != nil {
				return profiler.Stop()
			}

			return nil
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())
	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}
	if err := profileCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register profile completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newConvertCmd(),
		newAdmFormatCmd(),
		newCheckCmd(),
		newSchemaCmd(),
		newConfigSchemaCmd(),
		newBrowseCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// profiler and logPublisher are shared between the root command's pre/post
// run hooks and subcommands that need them (browse, for its live log pane).
var (
	profiler     *profile.Profiler
	logPublisher *log.Publisher
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ari %s (%s, %s/%s, rev %s)\n",
				version.Version, version.GoVersion, version.GoOS, version.GoArch, version.Revision)

			return nil
		},
	}
}
