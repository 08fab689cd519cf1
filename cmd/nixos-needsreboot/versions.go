package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nixos-needsreboot/internal/config"
	"github.com/conn-castle/nixos-needsreboot/internal/messages"
	"github.com/conn-castle/nixos-needsreboot/internal/modules"
	"github.com/conn-castle/nixos-needsreboot/internal/terminal"
)

var readFile = os.ReadFile

// versionRow is one line of the versions report.
type versionRow struct {
	name   string
	booted string
	staged string
	newer  bool
}

func newVersionsCmd(opts *rootOptions) *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   messages.VersionsUse,
		Short: messages.VersionsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			rows, err := collectVersions(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showDiff {
				printVersionsDiff(out, cfg, rows)
				return nil
			}
			printVersionsTable(out, rows, terminal.ColorEnabled(out, getenv))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, messages.VersionsFlagDiff)
	return cmd
}

// collectVersions reads the generation ids and every component's versions.
// A missing nixos-version is shown as empty rather than failing the report.
func collectVersions(cfg *config.Config) ([]versionRow, error) {
	sys := modules.RealSystem{Prefix: cfg.Prefix}
	generation := versionRow{
		name:   messages.VersionsGenerationRow,
		booted: readGeneration(sys, cfg.BootedSystem),
		staged: readGeneration(sys, cfg.StagedSystem),
	}
	rows := []versionRow{generation}
	for _, component := range modules.Components() {
		booted, staged, err := component.Versions(sys, cfg.BootedSystem, cfg.StagedSystem)
		if err != nil {
			return nil, err
		}
		rows = append(rows, versionRow{
			name:   component.String(),
			booted: booted,
			staged: staged,
			newer:  modules.Newer(booted, staged),
		})
	}
	return rows, nil
}

func readGeneration(sys modules.RealSystem, root string) string {
	path, err := sys.HostPath(filepath.Join(root, config.SystemIDFile))
	if err != nil {
		return ""
	}
	data, err := readFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func printVersionsTable(out io.Writer, rows []versionRow, colored bool) {
	tw := table.NewWriter()
	if colored {
		tw.SetStyle(table.StyleColoredBlueWhiteOnBlack)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.AppendHeader(table.Row{
		messages.VersionsHeaderComponent,
		messages.VersionsHeaderBooted,
		messages.VersionsHeaderStaged,
		messages.VersionsHeaderNewer,
	})
	for i, row := range rows {
		newer := ""
		if i > 0 {
			newer = messages.VersionsNo
			if row.newer {
				newer = messages.VersionsYes
			}
		}
		tw.AppendRow(table.Row{row.name, row.booted, row.staged, newer})
	}
	_, _ = fmt.Fprintln(out, tw.Render())
}

func printVersionsDiff(out io.Writer, cfg *config.Config, rows []versionRow) {
	var booted, staged strings.Builder
	for _, row := range rows {
		_, _ = fmt.Fprintf(&booted, messages.VersionsListingLineFmt, row.name, row.booted)
		_, _ = fmt.Fprintf(&staged, messages.VersionsListingLineFmt, row.name, row.staged)
	}
	diff := udiff.Unified(
		fmt.Sprintf(messages.VersionsDiffLabelFmt, messages.DoctorLabelBooted, cfg.BootedSystem),
		fmt.Sprintf(messages.VersionsDiffLabelFmt, messages.DoctorLabelStaged, cfg.StagedSystem),
		booted.String(),
		staged.String(),
	)
	if diff == "" {
		_, _ = fmt.Fprintln(out, messages.VersionsNoDifferences)
		return
	}
	_, _ = io.WriteString(out, diff)
}
