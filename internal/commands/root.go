package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgroam2cosma/internal/config"
	"github.com/gerunddev/orgroam2cosma/internal/convert"
	"github.com/gerunddev/orgroam2cosma/internal/logger"
	"github.com/gerunddev/orgroam2cosma/internal/pipeline"
	"github.com/gerunddev/orgroam2cosma/internal/styles"
)

type convertFlags struct {
	input        string
	output       string
	tags         string
	creationDate bool
	zettlr       bool
	verbose      bool
	dryRun       bool
	reuseIDs     bool
	configPath   string
}

// NewRootCommand builds the orgroam2cosma command tree
func NewRootCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "orgroam2cosma -i <input> -o <output>",
		Short: "Convert an org-roam directory into Cosma markdown notes",
		Long: `orgroam2cosma reads every .org note under the input directory, assigns each
one an identifier and writes a markdown note with YAML front matter to the
output directory, together with a _title2id.csv index.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.input, "input", "i", "", "org-roam directory to read")
	f.StringVarP(&flags.output, "output", "o", "", "directory to write markdown notes to")
	f.StringVar(&flags.tags, "tags", "", "comma separated tags (accepted, not applied)")
	f.BoolVar(&flags.creationDate, "creationdate", false, "derive generated ids from file creation time")
	f.BoolVar(&flags.zettlr, "zettlr", false, "write links as [label]([[id]])")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "report progress")
	f.BoolVar(&flags.dryRun, "dry-run", false, "show what would change without writing")
	f.BoolVar(&flags.reuseIDs, "reuse-ids", false, "keep generated ids from the existing index file")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", fmt.Sprintf("config file (default %s)", config.ConfigPath()))

	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newConfigCommand(&flags.configPath))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the command tree against the process arguments
func Execute() error {
	return NewRootCommand().Execute()
}

func runConvert(cmd *cobra.Command, flags *convertFlags) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	// Command line flags override the config file
	changed := cmd.Flags().Changed
	if changed("creationdate") {
		cfg.CreationDate = flags.creationDate
	}
	if changed("zettlr") {
		if flags.zettlr {
			cfg.LinkStyle = config.LinkStyleZettlr
		} else {
			cfg.LinkStyle = config.LinkStyleCosma
		}
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	if changed("reuse-ids") {
		cfg.ReuseIDs = flags.reuseIDs
	}

	style, err := convert.ParseLinkStyle(cfg.LinkStyle)
	if err != nil {
		return err
	}

	log, cleanup, err := logger.NewConsole(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer cleanup()
	log.ConfigLoaded(configFile(flags.configPath), cfg.LinkStyle, cfg.CreationDate)

	converter := pipeline.NewConverter(pipeline.Options{
		InputDir:     flags.input,
		OutputDir:    flags.output,
		Tags:         flags.tags,
		LinkStyle:    style,
		CreationDate: cfg.CreationDate,
		ReuseIDs:     cfg.ReuseIDs,
		IndexFile:    cfg.IndexFile,
		DryRun:       flags.dryRun,
	})
	converter.SetLogger(log)
	converter.SetOutput(cmd.OutOrStdout())

	result, err := converter.Run()
	if err != nil {
		return err
	}

	if cfg.Verbose || flags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("✓ "+result.String()))
	}
	return nil
}

func configFile(override string) string {
	if override != "" {
		return override
	}
	return config.ConfigPath()
}

func loadConfig(override string) (*config.Config, error) {
	return config.LoadFile(configFile(override))
}
