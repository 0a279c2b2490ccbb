package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "braillestl",
		Short: "Generate 3D-printable braille STL files from a job description",
	}
	root.AddCommand(newGenerateCmd())
	return root
}
