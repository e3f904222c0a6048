package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfaller/inspect-spacy-model/internal/config"
	"github.com/lfaller/inspect-spacy-model/internal/logging"
	"github.com/lfaller/inspect-spacy-model/internal/pipeline"
	"github.com/lfaller/inspect-spacy-model/internal/report"
	"github.com/lfaller/inspect-spacy-model/internal/store"
)

const appVersion = "0.1.0"

// cfg holds the effective configuration, loaded by the root command's
// PersistentPreRunE before any RunE fires.
var cfg *config.Config

// NewRootCmd builds the spacy-inspect command tree. Every call returns a
// fresh tree, so tests can execute commands without shared flag state.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile   string
		modelsDir string
		listOnly  bool
		listLang  string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "spacy-inspect [model]",
		Short: "Inspect installed spaCy model bundles",
		Long: `spacy-inspect loads a spaCy model bundle by name and reports what is
inside it: metadata, pipeline components, vocabulary and vector stats,
entity and POS label sets, a test run over a sample sentence, and the
on-disk layout of the bundle.

Bundles are plain directories installed under ~/.spacy-inspect/models.
Use the download command to fetch one from the bundle registry.`,
		Version:      appVersion,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if modelsDir != "" {
				loaded.Model.Dir = modelsDir
			}
			if err := logging.Init(loaded.Logging.Level, loaded.Logging.File, loaded.Logging.Console); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if listOnly {
				return runList(cmd, listLang)
			}

			name := cfg.Model.Default
			if len(args) > 0 {
				name = args[0]
			}
			return runInspect(cmd, name, verbose)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.spacy-inspect/config.yaml)")
	cmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "", "models directory (default is $HOME/.spacy-inspect/models)")
	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "list installed models and exit")
	cmd.Flags().StringVar(&listLang, "lang", "", "with --list, filter downloadable models by language code")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	cmd.ValidArgsFunction = validModelNames

	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func runInspect(cmd *cobra.Command, name string, verbose bool) error {
	st, err := store.NewStore(cfg.Model.Dir)
	if err != nil {
		return err
	}

	dir, err := st.Resolve(name)
	if err != nil {
		if errors.Is(err, store.ErrNotInstalled) {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ Model '%s' not found. Run: spacy-inspect download %s\n", name, name)
		}
		return err
	}

	logging.Debugf("loading model %s from %s", name, dir)
	p, err := pipeline.Load(dir)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "❌ Failed to load model '%s': %v\n", name, err)
		return fmt.Errorf("failed to load model %s: %w", name, err)
	}
	defer p.Close()

	report.New(cmd.OutOrStdout(), verbose).Run(p)
	return nil
}
