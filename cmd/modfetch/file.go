package main

import (
	"crypto/sha256"
	"fmt"

	"github.com/adamwoolhether/modhttp/client/download"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	sha256Sum  string
	noProgress bool
)

var fileCmd = &cobra.Command{
	Use:   "file URL PATH",
	Short: "Download a single mod file",
	Long: `Download URL to PATH under the mod update size cap. PATH is only
replaced once the whole file has arrived.`,
	Args: cobra.ExactArgs(2),
	RunE: runFile,
}

func init() {
	fileCmd.Flags().StringVar(&sha256Sum, "sha256", "", "expected hex SHA-256 of the file")
	fileCmd.Flags().BoolVar(&noProgress, "no-progress", false, "log progress instead of drawing a progress bar")
}

func runFile(cmd *cobra.Command, args []string) error {
	var opts []download.Option
	if sha256Sum != "" {
		opts = append(opts, download.WithChecksum(sha256.New(), sha256Sum))
	}

	var bar *progressbar.ProgressBar
	if noProgress {
		opts = append(opts, download.WithProgress())
	} else {
		bar = progressbar.DefaultBytes(-1, "downloading")
		opts = append(opts, download.WithProgressFunc(func(transferred, total int64) {
			if total > 0 && bar.GetMax64() != total {
				bar.ChangeMax64(total)
			}
			_ = bar.Set64(transferred)
		}))
	}

	res := session.DownloadFile(cmd.Context(), args[0], args[1], opts...)
	if bar != nil {
		_ = bar.Finish()
	}
	if err := exitOnFailure(res); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Path)

	return nil
}
