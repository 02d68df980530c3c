package main

import (
	"errors"
	"fmt"

	"github.com/fbkclanna/ocrdws/internal/ui"
	"github.com/fbkclanna/ocrdws/internal/workspace"
	"github.com/spf13/cobra"
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <group>",
		Short: "Download every file of a group into the workspace",
		Args:  cobra.ExactArgs(1),
		RunE:  runDownload,
	}
	cmd.Flags().IntP("jobs", "j", 0, "Parallel downloads (default from config)")
	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	group := args[0]
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs < 0 {
		return fmt.Errorf("--jobs must not be negative (got %d)", jobs)
	}

	// The total is only known once the manifest is loaded.
	progress := ui.NewProgress(cmd.OutOrStdout(), 0)
	extra := []workspace.Option{workspace.WithObserver(progress)}
	if jobs > 0 {
		extra = append(extra, workspace.WithJobs(jobs))
	}
	s, err := openSession(cmd, extra...)
	if err != nil {
		return err
	}

	files := s.ws.Mets().FilesInGroup(group)
	if len(files) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No files in group %s\n", group)
		return nil
	}
	progress.SetTotal(len(files))

	dlErr := s.ws.DownloadFilesInGroup(cmd.Context(), group)
	// Files fetched before a failure are recorded either way.
	saveErr := s.ws.SaveManifest(cmd.Context())
	if err := errors.Join(dlErr, saveErr); err != nil {
		return err
	}

	s.logger.Info("group downloaded", "group", group, "files", progress.Completed())
	progress.Log("Downloaded %d file(s) of group %s", progress.Completed(), group)
	return nil
}
