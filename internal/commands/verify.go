package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgroam2cosma/internal/styles"
	"github.com/gerunddev/orgroam2cosma/internal/verify"
)

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <dir>",
		Short: "Check converted notes for missing fields and dangling references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			report, err := verify.Check(args[0])
			if err != nil && !errors.Is(err, verify.ErrProblems) {
				return err
			}

			for _, p := range report.Problems {
				fmt.Fprintln(out, styles.WarningStyle.Render("• "+p.String()))
			}

			if report.OK() {
				fmt.Fprintln(out, styles.SuccessStyle.Render(fmt.Sprintf("✓ %d notes verified", report.Files)))
				return nil
			}

			fmt.Fprintln(out, styles.DimStyle.Render(fmt.Sprintf("%d problems in %d notes", len(report.Problems), report.Files)))
			return err
		},
	}
}
