package main

import (
	"fmt"

	"github.com/adamwoolhether/modhttp/release"
	"github.com/spf13/cobra"
)

var (
	assetSuffix string
	baseURL     string
)

var checkCmd = &cobra.Command{
	Use:   "check OWNER/REPO VERSION",
	Short: "Check GitHub for a newer release of a mod",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&assetSuffix, "asset", ".zip", "suffix of the release asset to download")
	checkCmd.Flags().StringVar(&baseURL, "api", release.DefaultBaseURL, "GitHub API base URL")
}

func runCheck(cmd *cobra.Command, args []string) error {
	owner, repo, err := release.ParseRepo(args[0])
	if err != nil {
		return err
	}

	checker, err := release.NewChecker(session, release.WithBaseURL(baseURL))
	if err != nil {
		return err
	}

	rel, err := checker.Latest(cmd.Context(), owner, repo)
	if err != nil {
		return err
	}

	newer, err := rel.NewerThan(args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !newer {
		fmt.Fprintf(out, "%s/%s is up to date (%s)\n", owner, repo, args[1])
		return nil
	}

	fmt.Fprintf(out, "%s/%s %s is available (installed %s)\n", owner, repo, rel.TagName, args[1])
	fmt.Fprintln(out, rel.DownloadURL(assetSuffix))

	logger.Info("update available", "repo", args[0], "latest", rel.TagName, "installed", args[1])

	return nil
}
