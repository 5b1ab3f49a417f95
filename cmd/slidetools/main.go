// Package main provides the CLI entry point for slidetools-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ukaji3/slidetools-go/pkg/slidetools"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/engine"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

const (
	envWorkingPath = "SLIDETOOLS_WORKING_PATH"
	envLogLevel    = "SLIDETOOLS_LOG_LEVEL"
)

var (
	configFile   string
	actionName   string
	condition    string
	itemName     string
	variableName string
	inputFiles   []string
	outputFile   string
	options      []string
	properties   string
	workingPath  string
	verbose      bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slidetools",
		Short: "Automate PowerPoint decks with action trees",
		Long: `slidetools runs action trees against PowerPoint (.pptx) decks: it selects shapes
by condition, aligns and resizes them, and writes shape reports and inventories.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRunCommand(), newActionsCommand())
	return rootCmd
}

func newRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run an action file or a single action",
		Example: `  slidetools run --config tree.json
  slidetools run --action SlideReport --infile deck.pptx --outfile report.txt`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	flags := runCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "Action file (.json, .toml, .yaml)")
	flags.StringVarP(&actionName, "action", "a", "", "Single action to run")
	flags.StringVar(&condition, "condition", "", "Condition for FindObjects")
	flags.StringVar(&itemName, "item-name", "", "Item variable name")
	flags.StringVar(&variableName, "variable-name", "", "Variable read or written by the action")
	flags.StringArrayVarP(&inputFiles, "infile", "i", nil, "Input deck (repeatable)")
	flags.StringVarP(&outputFile, "outfile", "o", "", "Output deck, report or inventory")
	flags.StringArrayVar(&options, "option", nil, "Option flag, e.g. Verify (repeatable)")
	flags.StringVar(&properties, "properties", "", `Properties as JSON, e.g. [{"Name":"AdjustHeightRelative","Value":"true"}]`)
	flags.StringVarP(&workingPath, "working-path", "w", os.Getenv(envWorkingPath), "Base directory for relative file names")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	runCmd.MarkFlagsMutuallyExclusive("config", "action")
	return runCmd
}

func newActionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the recognized action names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range engine.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts := slidetools.DefaultOptions()
	opts.WorkingPath = workingPath
	opts.Output = cmd.ErrOrStderr()
	if level := os.Getenv(envLogLevel); level != "" {
		opts.Level = slidetools.Level(strings.ToLower(level))
	}
	if verbose {
		opts.Level = slidetools.LevelVerbose
	}

	if configFile != "" {
		return slidetools.RunFile(cmd.Context(), configFile, opts)
	}
	if actionName == "" {
		return fmt.Errorf("either --config or --action is required")
	}

	item, err := actionFromFlags()
	if err != nil {
		return err
	}
	return slidetools.Run(cmd.Context(), item, opts)
}

// actionFromFlags builds a single-node tree from the run flags.
func actionFromFlags() (*models.ActionItem, error) {
	props, err := slidetools.ParseProperties(properties)
	if err != nil {
		return nil, err
	}
	return &models.ActionItem{
		Action:       actionName,
		Condition:    condition,
		ItemName:     itemName,
		VariableName: variableName,
		InputFiles:   inputFiles,
		OutputFile:   outputFile,
		Options:      options,
		Properties:   props,
	}, nil
}
