// Package cmd wires the easel panels and supporting tooling into a cobra
// command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/pkg/profiling"
	"github.com/easeltools/easel/version"
)

// NewRootCmd builds the easel command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"easel",
		"Terminal panels for node-based creative tools",
	)
	root.Long = `Easel puts the side panels of a node-based creative tool in the
terminal: a model browser, an image gallery, a file editor and an LLM chat
sidebar, all talking to the running host application.

Examples:
  # Browse models known to the host (or scanned locally)
  easel browse

  # Walk the host's output images
  easel gallery

  # Edit a file on the host with validation before write
  easel edit workflows/main.json

  # Follow the host application's logs
  easel logs
`

	info := version.GetInfo()
	root.Version = info.Version
	cli.SetVersionTemplate(root, info)

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.PreRun
	root.PersistentPostRun = profiler.PostRun

	root.AddCommand(
		NewBrowseCmd(),
		NewGalleryCmd(),
		NewEditCmd(),
		NewChatCmd(),
		NewLogsCmd(),
		NewConfigCmd(),
		cli.NewVersionCommand(),
	)

	cli.ApplyStyledHelpRecursive(root)
	return root
}
