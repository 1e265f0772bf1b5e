package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"visub/internal/style"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available style presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range style.Presets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", p.Name, p.Description)
			}
		},
	}
}
