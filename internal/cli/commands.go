package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/envsync/internal/version"
	"github.com/arthur-debert/envsync/pkg/activate"
	"github.com/arthur-debert/envsync/pkg/cmdexec"
	"github.com/arthur-debert/envsync/pkg/config"
	"github.com/arthur-debert/envsync/pkg/errors"
	"github.com/arthur-debert/envsync/pkg/filesystem"
	"github.com/arthur-debert/envsync/pkg/logging"
	"github.com/arthur-debert/envsync/pkg/shell"
	"github.com/arthur-debert/envsync/pkg/style"
	"github.com/arthur-debert/envsync/pkg/types"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		runPrefix string
	)

	rootCmd := &cobra.Command{
		Use:   "envsync",
		Short: "Publish generated configuration into the Windows side of a WSL host",
		Long: `envsync detects whether this session runs under WSL and, if so, publishes
a generated configuration artifact into the active Windows user's profile
directory. It also provides the guarded sourcing of session variables at
interactive shell startup.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().StringVar(&runPrefix, "run-prefix", "", "Command prefix substituted for the copy in dry-run mode (e.g. echo)")

	rootCmd.AddCommand(newActivateCmd(&dryRun, &verbosity, &runPrefix))
	rootCmd.AddCommand(newSourceVarsCmd())
	rootCmd.AddCommand(newSnippetCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newActivateCmd(dryRun *bool, verbosity *int, runPrefix *string) *cobra.Command {
	var (
		mountPath  string
		sourceFile string
		targetName string
	)

	cmd := &cobra.Command{
		Use:     "activate",
		Short:   MsgActivateShort,
		Long:    MsgActivateLong,
		Example: MsgActivateExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if mountPath == "" {
				mountPath = cfg.Mount.Path
			}
			if sourceFile == "" {
				sourceFile = cfg.Artifact.Source
			}
			if targetName == "" {
				targetName = cfg.Artifact.TargetName
			}

			result, err := activate.Activate(cmd.Context(), activate.Options{
				MountPath:  mountPath,
				SourceFile: sourceFile,
				TargetName: targetName,
				DryRun:     *dryRun,
				Verbose:    *verbosity > 0,
				RunPrefix:  *runPrefix,
				Out:        cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			switch {
			case result.Skipped:
				// Not running under WSL: stay silent at default verbosity so
				// shell startup is not polluted.
				if *verbosity > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s no foreign mount at %s\n", style.Badge(style.StatusSkipped), mountPath)
				}
			case result.DryRun:
				fmt.Fprintf(cmd.OutOrStdout(), "%s no files written\n", style.Badge(style.StatusPreview))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s environment activated\n", style.Badge(style.StatusSuccess))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mountPath, "mount", "", "Users mount point (default from config)")
	cmd.Flags().StringVar(&sourceFile, "source", "", "Generated artifact to publish (default from config)")
	cmd.Flags().StringVar(&targetName, "target-name", "", "File name inside the user profile (default from config)")

	return cmd
}

func newSourceVarsCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:     "source-vars [script]",
		Short:   MsgSourceVarsShort,
		Long:    MsgSourceVarsLong,
		Example: MsgSourceVarsExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scriptPath := ""
			if len(args) == 1 {
				scriptPath = args[0]
			} else {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				scriptPath = cfg.Vars.Script
			}

			report, err := shell.SourceVars(cmd.Context(), &cmdexec.RealCommander{}, filesystem.NewOS(), scriptPath)
			if err != nil {
				return err
			}

			if report.State == types.SourceAborted {
				fmt.Fprintln(cmd.ErrOrStderr(), style.Warning(report.Warning))
				// The warning is already printed; the nonzero exit is the
				// signal the startup snippet reacts to.
				return ErrSourcingAborted
			}

			if exports := shell.FormatExports(report.Exports, shellType); exports != "" {
				fmt.Fprint(cmd.OutOrStdout(), exports)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&shellType, "shell", "s", "bash", "Shell dialect for the emitted exports (bash, zsh, fish)")

	return cmd
}

func newSnippetCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:     "snippet",
		Short:   MsgSnippetShort,
		Long:    MsgSnippetLong,
		Example: MsgSnippetExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), shell.InitSnippet(shellType))
			return nil
		},
	}

	cmd.Flags().StringVarP(&shellType, "shell", "s", "bash", "Shell type (bash, zsh, fish)")

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GetUserDefaultsContent()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			targetPath := config.UserConfigPath()
			if _, err := os.Stat(targetPath); err == nil {
				log.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, "failed to create %s", filepath.Dir(targetPath))
			}
			if err := os.WriteFile(targetPath, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, "failed to write %s", targetPath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", targetPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write the defaults to the user config path instead of stdout")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "envsync version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}
