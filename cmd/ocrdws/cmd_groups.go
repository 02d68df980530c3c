package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the file groups of the manifest",
		Args:  cobra.NoArgs,
		RunE:  runGroups,
	}
}

func runGroups(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	for _, g := range s.ws.Mets().FileGroups() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), g)
	}
	return nil
}
