package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var zipCmd = &cobra.Command{
	Use:   "zip URL [DIR]",
	Short: "Download and extract a zip archive",
	Long: `Download the zip archive at URL and extract it into DIR. Without DIR
the configured zip temp directory is emptied and used instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runZip,
}

func runZip(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) == 2 {
		dir = args[1]
	}

	res := session.DownloadZip(cmd.Context(), args[0], dir)
	if err := exitOnFailure(res); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Path)

	return nil
}
