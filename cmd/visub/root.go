package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := defaultGenerateOptions()

	rootCmd := &cobra.Command{
		Use:   "visub [flags] <video>...",
		Short: "Word-by-word subtitle generator",
		Long: `visub transcribes videos with WhisperX and assembles word-by-word styled
ASS subtitles, with per-speaker colors, karaoke-style word highlighting, and
an optional burned-in video. Inputs may be local files or HTTP(S) URLs.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGenerate(cmd.Context(), opts, args)
		},
	}

	addGenerateFlags(rootCmd, opts)
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newPresetsCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
