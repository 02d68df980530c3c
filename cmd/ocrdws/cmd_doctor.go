package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/ocrdws/internal/config"
	"github.com/fbkclanna/ocrdws/internal/mets"
	"github.com/fbkclanna/ocrdws/internal/workspace"
	"github.com/fbkclanna/ocrdws/internal/xmllint"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the workspace and its environment",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	dir, _ := cmd.Flags().GetString("directory")
	ok := true

	// Check config.
	cfgPath := configPath(cmd)
	_, _ = fmt.Fprintf(out, "Checking config %s... ", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		_, _ = fmt.Fprintf(out, "INVALID\n  %v\n", err)
		cfg = config.Default()
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, "OK")
	}

	// Check xmllint. Only required when pretty output is configured.
	lint := xmllint.New(cfg.Xmllint.Path)
	_, _ = fmt.Fprint(out, "Checking xmllint... ")
	hasLint := lint.IsInstalled()
	switch {
	case hasLint:
		_, _ = fmt.Fprintln(out, "found")
	case cfg.Pretty:
		_, _ = fmt.Fprintln(out, "NOT FOUND (required by pretty: true)")
		ok = false
	default:
		_, _ = fmt.Fprintln(out, "not found (only needed for --pretty)")
	}

	// Check manifest.
	metsPath := filepath.Join(dir, workspace.MetsFileName)
	_, _ = fmt.Fprintf(out, "Checking manifest %s... ", metsPath)
	m, err := mets.Load(metsPath)
	switch {
	case errors.Is(err, mets.ErrNotFound):
		_, _ = fmt.Fprintln(out, "not found (run ocrdws init)")
	case err != nil:
		_, _ = fmt.Fprintf(out, "INVALID\n  %v\n", err)
		ok = false
	default:
		_, _ = fmt.Fprintf(out, "%d group(s), %d file(s)\n", len(m.FileGroups()), len(m.Files()))
		if hasLint {
			ok = checkSerialized(cmd, lint, m) && ok
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkSerialized runs the manifest as it would be saved through xmllint.
func checkSerialized(cmd *cobra.Command, lint *xmllint.Formatter, m *mets.Mets) bool {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, "Checking serialized manifest with xmllint... ")
	data, err := m.Serialize(cmd.Context(), false)
	if err == nil {
		err = lint.Check(cmd.Context(), data)
	}
	if err != nil {
		_, _ = fmt.Fprintf(out, "FAILED\n  %v\n", err)
		return false
	}
	_, _ = fmt.Fprintln(out, "OK")
	return true
}
