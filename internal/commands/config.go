package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgroam2cosma/internal/config"
	"github.com/gerunddev/orgroam2cosma/internal/styles"
)

func newConfigCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.TitleStyle.Render("orgroam2cosma configuration"))
			fmt.Fprintln(out, styles.DimStyle.Render("  "+configFile(*configPath)))
			fmt.Fprintln(out)
			printField(out, "link_style", cfg.LinkStyle)
			printField(out, "creation_date", fmt.Sprint(cfg.CreationDate))
			printField(out, "verbose", fmt.Sprint(cfg.Verbose))
			printField(out, "log_file", cfg.LogFile)
			printField(out, "index_file", cfg.IndexFile)
			printField(out, "reuse_ids", fmt.Sprint(cfg.ReuseIDs))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFile(*configPath)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().SaveFile(path); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}

func printField(w io.Writer, name, value string) {
	if value == "" {
		value = styles.DimStyle.Render("(unset)")
	}
	fmt.Fprintf(w, "  %s %s\n", styles.HighlightStyle.Render(fmt.Sprintf("%-14s", name)), value)
}
