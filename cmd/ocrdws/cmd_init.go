package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/ocrdws/internal/config"
	"github.com/fbkclanna/ocrdws/internal/workspace"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty mets.xml in the workspace directory",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().Bool("force", false, "Replace an existing mets.xml")
	cmd.Flags().Bool("write-config", false, "Also write a default "+config.FileName+" unless one exists")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("directory")
	force, _ := cmd.Flags().GetBool("force")

	writeConfig, _ := cmd.Flags().GetBool("write-config")

	metsPath := filepath.Join(dir, workspace.MetsFileName)
	if _, err := os.Stat(metsPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", metsPath)
	}

	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // workspace dir needs to be world-readable
		return fmt.Errorf("creating workspace directory: %w", err)
	}

	// An existing manifest is replaced atomically by the save below, never
	// removed up front.
	s, err := openSession(cmd, workspace.WithEmptyManifest())
	if err != nil {
		return err
	}
	if err := s.ws.SaveManifest(cmd.Context()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Workspace created at %s\n", s.ws.Directory())

	if writeConfig {
		path := configPath(cmd)
		if _, err := os.Stat(path); err == nil {
			_, _ = fmt.Fprintf(out, "Keeping existing config %s\n", path)
			return nil
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote default config to %s\n", path)
	}
	return nil
}
