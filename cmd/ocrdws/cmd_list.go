package main

import (
	"encoding/json"

	"github.com/fbkclanna/ocrdws/internal/mets"
	"github.com/fbkclanna/ocrdws/internal/ui"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files of the manifest",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().String("group", "", "Only list files of this group")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	group, _ := cmd.Flags().GetString("group")
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	var files []*mets.File
	if group != "" {
		files = s.ws.Mets().FilesInGroup(group)
	} else {
		files = s.ws.Mets().Files()
	}
	infos := make([]mets.FileInfo, 0, len(files))
	for _, f := range files {
		infos = append(infos, f.Info())
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, isTerminal(out), "ID", "GROUP", "MIMETYPE", "URL", "LOCAL")
	for _, fi := range infos {
		local := fi.LocalFilename
		if local == "" {
			local = "-"
		}
		tbl.Row(fi.ID, fi.Group, fi.Mimetype, fi.URL, local)
	}
	return tbl.Flush()
}
