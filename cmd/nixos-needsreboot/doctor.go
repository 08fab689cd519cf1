package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nixos-needsreboot/internal/doctor"
	"github.com/conn-castle/nixos-needsreboot/internal/messages"
	"github.com/conn-castle/nixos-needsreboot/internal/terminal"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			colored := terminal.ColorEnabled(out, getenv)

			_, _ = fmt.Fprintf(out, messages.DoctorHeaderFmt, cfg.BootedSystem, cfg.StagedSystem)

			var allResults []doctor.Result
			allResults = append(allResults, doctor.CheckPrivileges(getEUID()))
			systemResults := doctor.CheckSystems(cfg)
			allResults = append(allResults, systemResults...)
			if !hasStatus(systemResults, doctor.StatusFail) {
				allResults = append(allResults, doctor.CheckComponents(cfg)...)
			}
			allResults = append(allResults, doctor.CheckSentinel(cfg))

			for _, r := range allResults {
				printResult(out, r, colored)
			}
			if hasStatus(allResults, doctor.StatusFail) {
				_, _ = fmt.Fprintln(out, paint(colored, color.FgRed, messages.DoctorFailureSummary))
				return &SilentExitError{Code: 1}
			}
			_, _ = fmt.Fprintln(out, paint(colored, color.FgGreen, messages.DoctorSuccessSummary))
			return nil
		},
	}
}

func hasStatus(results []doctor.Result, status doctor.Status) bool {
	for _, r := range results {
		if r.Status == status {
			return true
		}
	}
	return false
}

func paint(colored bool, attr color.Attribute, s string) string {
	c := color.New(attr)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func printResult(out io.Writer, r doctor.Result, colored bool) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = paint(colored, color.FgGreen, messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = paint(colored, color.FgYellow, messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = paint(colored, color.FgRed, messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
