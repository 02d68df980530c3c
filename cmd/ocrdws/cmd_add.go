package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fbkclanna/ocrdws/internal/mets"
	"github.com/fbkclanna/ocrdws/internal/workspace"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <group> <path-or-url>",
		Short: "Register a file in a file group",
		Long: `Register a file in a file group of the manifest.

A remote URL (http, https, s3) is registered without downloading it.
A local path must lie inside the workspace unless --copy is given, in
which case its content is copied to <group>/<basename>.`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}
	cmd.Flags().String("id", "", "File ID (generated when empty)")
	cmd.Flags().String("mimetype", "", "MIME type (guessed from the extension when empty)")
	cmd.Flags().String("basename", "", "File name inside the group directory")
	cmd.Flags().String("url", "", "URL to record for a local file")
	cmd.Flags().Bool("copy", false, "Copy a local file into <group>/<basename>")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	group, src := args[0], args[1]
	id, _ := cmd.Flags().GetString("id")
	mimetype, _ := cmd.Flags().GetString("mimetype")
	basename, _ := cmd.Flags().GetString("basename")
	fileURL, _ := cmd.Flags().GetString("url")
	doCopy, _ := cmd.Flags().GetBool("copy")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	var f *mets.File
	if isRemote(src) {
		f, err = s.ws.Mets().AddFile(group, mets.FileOpts{ID: id, URL: src, Mimetype: mimetype})
	} else {
		f, err = addLocal(s.ws, group, src, workspace.AddFileOpts{
			Basename: basename,
			URL:      fileURL,
			ID:       id,
			Mimetype: mimetype,
		}, doCopy)
	}
	if err != nil {
		return err
	}

	if err := s.ws.SaveManifest(cmd.Context()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", f)
	return nil
}

func addLocal(ws *workspace.Workspace, group, src string, opts workspace.AddFileOpts, doCopy bool) (*mets.File, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}
	if !doCopy {
		opts.Basename = ""
		opts.LocalFilename = abs
		return ws.AddFile(group, opts)
	}

	content, err := os.ReadFile(abs) //nolint:gosec // user-provided source file
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	if opts.Basename == "" {
		opts.Basename = filepath.Base(abs)
	}
	opts.Content = content
	return ws.AddFile(group, opts)
}

func isRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "s3":
		return true
	}
	return false
}
