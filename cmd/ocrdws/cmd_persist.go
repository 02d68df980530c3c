package main

import (
	"fmt"

	"github.com/fbkclanna/ocrdws/internal/workspace"
	"github.com/spf13/cobra"
)

func newPersistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "persist",
		Short: "Write the manifest back to mets.xml",
		Args:  cobra.NoArgs,
		RunE:  runPersist,
	}
	cmd.Flags().Bool("pretty", false, "Format the manifest with xmllint")
	return cmd
}

func runPersist(cmd *cobra.Command, _ []string) error {
	var extra []workspace.Option
	if cmd.Flags().Changed("pretty") {
		pretty, _ := cmd.Flags().GetBool("pretty")
		extra = append(extra, workspace.WithPretty(pretty))
	}

	s, err := openSession(cmd, extra...)
	if err != nil {
		return err
	}
	if s.ws.Pretty() && !s.lint.IsInstalled() {
		s.logger.Warn("xmllint not found, manifest will be saved unformatted", "binary", s.lint.Binary)
	}
	if err := s.ws.Persist(cmd.Context()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", s.ws.MetsPath())
	return nil
}
