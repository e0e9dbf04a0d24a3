package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/scaffold/internal/version"
	"github.com/arthur-debert/scaffold/pkg/cobrax/topics"
	"github.com/arthur-debert/scaffold/pkg/commands"
	"github.com/arthur-debert/scaffold/pkg/config"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/output"
	"github.com/arthur-debert/scaffold/pkg/templates"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/arthur-debert/scaffold/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

//go:embed topics
var topicsFS embed.FS

// session carries state resolved once in PersistentPreRunE
type session struct {
	verbosity int
	cfg       *config.Config
}

// reporter builds the output reporter for the configured format
func (s *session) reporter(cmd *cobra.Command) (output.Reporter, error) {
	format, err := ui.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return output.NewReporter(format, cmd.OutOrStdout()), nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	s := &session{}

	rootCmd := &cobra.Command{
		Use:     "scaffold",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithOptions(config.LoadOptions{
				Overrides: flagOverrides(cmd),
			})
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			s.cfg = cfg

			logging.SetupLoggerWithOptions(cfg.LoggingOptions(s.verbosity))
			logging.LogCommand(cmd.Name(), args)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&s.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("format", ui.FormatAuto.String(), MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenerateCmd(s))
	rootCmd.AddCommand(newListCmd(s))
	rootCmd.AddCommand(newDescribeCmd(s))
	rootCmd.AddCommand(newGenConfigCmd(s))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	helpFS, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, helpFS, topics.Options{
			Extensions: []string{".txt", ".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// flagOverrides maps explicitly set flags onto configuration keys so they
// take precedence over every file and environment source
func flagOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	flags := cmd.Flags()

	if f := flags.Lookup("format"); f != nil && f.Changed {
		overrides["output.format"] = f.Value.String()
	}
	if f := flags.Lookup("overwrite"); f != nil && f.Changed {
		overrides["output.overwrite"] = f.Value.String()
	}
	if transactional, err := flags.GetBool("transactional"); err == nil && transactional {
		overrides["execution.mode"] = string(types.ModeTransactional)
	}
	return overrides
}

func newGenerateCmd(s *session) *cobra.Command {
	var (
		templateNames []string
		manifestPath  string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:     "generate [base-dir]",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := s.reporter(cmd)
			if err != nil {
				return err
			}

			opts := commands.GenerateOptions{
				Templates:    templateNames,
				ManifestPath: manifestPath,
				Config:       s.cfg,
				DryRun:       dryRun,
				Reporter:     reporter,
			}
			if len(args) > 0 {
				opts.BaseDir = args[0]
			}

			log.Info().
				Str("baseDir", opts.BaseDir).
				Strs("templates", templateNames).
				Str("manifest", manifestPath).
				Bool("dryRun", dryRun).
				Msg("Starting generate")

			_, err = commands.Generate(opts)
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&templateNames, "template", "t", nil, MsgFlagTemplate)
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", MsgFlagManifest)
	cmd.Flags().String("overwrite", string(types.OverwriteReplace), MsgFlagOverwrite)
	cmd.Flags().Bool("transactional", false, MsgFlagTransactional)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)

	_ = cmd.RegisterFlagCompletionFunc("template", templateNamesCompletion)
	_ = cmd.RegisterFlagCompletionFunc("overwrite", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"overwrite", "error", "skip"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagFilename("manifest", "toml", "yaml", "yml")

	return cmd
}

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.ListTemplates()
			if err != nil {
				return err
			}
			reporter, err := s.reporter(cmd)
			if err != nil {
				return err
			}
			return reporter.Templates(result)
		},
	}
}

func newDescribeCmd(s *session) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:               "describe [template]",
		Short:             MsgDescribeShort,
		Example:           MsgDescribeExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.DescribeOptions{ManifestPath: manifestPath}
			if len(args) > 0 {
				opts.Template = args[0]
			}
			info, err := commands.Describe(opts)
			if err != nil {
				return err
			}
			reporter, err := s.reporter(cmd)
			if err != nil {
				return err
			}
			return reporter.Describe(info)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", MsgFlagManifest)
	_ = cmd.MarkFlagFilename("manifest", "toml", "yaml", "yml")

	return cmd
}

func newGenConfigCmd(s *session) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{Write: write})
			if err != nil {
				return err
			}
			if !write {
				_, err = fmt.Fprint(cmd.OutOrStdout(), result.ConfigContent)
				return err
			}

			reporter, err := s.reporter(cmd)
			if err != nil {
				return err
			}
			if len(result.FilesWritten) == 0 {
				return reporter.Message(fmt.Sprintf(MsgConfigExists, ".scaffold.toml"))
			}
			return reporter.Message(fmt.Sprintf(MsgConfigWritten, result.FilesWritten[0]))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Long:    MsgManLong,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "SCAFFOLD",
				Section: "1",
				Source:  "scaffold " + version.Version,
				Manual:  "scaffold manual",
			}
			if dir == "" {
				return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}

// templateNamesCompletion completes built-in template names
func templateNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return templates.Names(), cobra.ShellCompDirectiveNoFileComp
}
