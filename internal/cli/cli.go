// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/utilmd/internal/config"
	"github.com/tyemirov/utilmd/internal/filetree"
	"github.com/tyemirov/utilmd/internal/services/clipboard"
	"github.com/tyemirov/utilmd/internal/types"
	"github.com/tyemirov/utilmd/internal/utils"
)

const (
	inputFlagName       = "input"
	inputFlagShorthand  = "i"
	excludeFlagName     = "exclude-dirs"
	excludeFlagShort    = "e"
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	mocFlagName         = "moc"
	mocFlagShorthand    = "m"
	indexFlagName       = "index"
	indexFlagShorthand  = "n"
	treeFlagName        = "tree"
	treeFlagShorthand   = "t"
	dumpFlagName        = "dump"
	dumpFlagShorthand   = "d"
	formatFlagName      = "format"
	dryRunFlagName      = "dry-run"
	clipboardFlagName   = "clipboard"
	headingsFlagName    = "headings"
	configFlagName      = "config"
	versionFlagName     = "version"
	versionFlagShort    = "v"
	globalFlagName      = "global"
	forceFlagName       = "force"

	rootUse              = "utilmd"
	rootShortDescription = "markdown utilities for note folders"
	rootLongDescription  = `utilmd generates markdown navigation for a folder of notes.
Use --moc to write a map of content linking every file, --index to insert a
linked index of headings below a document's title, --tree to print the
directory tree and --dump to print the folder structure as JSON or YAML.`
	rootUsageExample = `  # Write "notes MOC.md" into ./notes
  utilmd -m -i notes

  # Insert a heading index into a document in place
  utilmd -n -i notes/topic.md

  # Preview the index without writing it
  utilmd -n -i notes/topic.md --dry-run

  # Print the tree of the current directory, skipping drafts
  utilmd -t -e drafts`
	initUse              = "init"
	initShortDescription = "write a default configuration file"

	inputFlagDescription     = "input file or directory"
	excludeFlagDescription   = "directory names to exclude, space or comma separated; replaces the default list"
	outputFlagDescription    = "output file"
	mocFlagDescription       = "generate a map of content"
	indexFlagDescription     = "generate a heading index"
	treeFlagDescription      = "print the directory tree"
	dumpFlagDescription      = "print the folder structure"
	formatFlagDescription    = "dump format (json or yaml)"
	dryRunFlagDescription    = "show the index changes without writing them"
	clipboardFlagDescription = "copy the printed tree to the clipboard"
	headingsFlagDescription  = "emit a heading for every folder in the map of content"
	configFlagDescription    = "configuration file path"
	versionFlagDescription   = "display application version"
	globalFlagDescription    = "write the configuration into the home directory"
	forceFlagDescription     = "overwrite an existing configuration file"

	versionTemplate             = "utilmd version: %s\n"
	configurationWrittenFormat  = "Configuration written to %s\n"
	invalidFormatMessage        = "invalid format value '%s'"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorStatFormat             = "stat failed for '%s': %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
)

// defaultExcludedDirectories applies when neither --exclude-dirs nor the configuration name any.
var defaultExcludedDirectories = []string{".history", ".git", ".assets", "_images", "_assets", "test"}

// dependencies carries the collaborators of every command so tests can substitute them.
type dependencies struct {
	logger           *zap.Logger
	copier           clipboard.Copier
	executableName   string
	workingDirectory string
	homeDirectory    string
}

// rootOptions stores the parsed root flags.
type rootOptions struct {
	input            string
	excludeDirs      []string
	output           string
	moc              bool
	index            bool
	tree             bool
	dump             bool
	format           string
	dryRun           bool
	clipboardEnabled bool
	headingsEnabled  bool
	configPath       string
	showVersion      bool
}

// selectedMode returns the requested mode, MOC taking precedence over index,
// index over tree and tree over dump.
func (options rootOptions) selectedMode() string {
	switch {
	case options.moc:
		return types.ModeMOC
	case options.index:
		return types.ModeIndex
	case options.tree:
		return types.ModeTree
	case options.dump:
		return types.ModeDump
	default:
		return ""
	}
}

// Execute runs the utilmd application.
func Execute(logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	rootCommand := createRootCommand(dependencies{
		logger:           logger,
		copier:           clipboard.NewSystemCopier(),
		executableName:   filepath.Base(os.Args[0]),
		workingDirectory: workingDirectory,
	})
	rootCommand.SetArgs(normalizeArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// normalizeArguments rewrites toggle literals and multi-name exclusions into forms pflag parses.
func normalizeArguments(command *cobra.Command, arguments []string) []string {
	return normalizeToggleFlagArguments(command, normalizeExcludeArguments(arguments))
}

// normalizeExcludeArguments folds "-e a b c" into "--exclude-dirs=a,b,c", consuming names
// up to the next flag. A bare -e becomes an empty value, which disables every exclusion.
func normalizeExcludeArguments(arguments []string) []string {
	normalized := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		currentArgument := arguments[argumentIndex]
		if currentArgument == longFlagPrefix {
			return append(normalized, arguments[argumentIndex:]...)
		}
		if currentArgument != shortFlagPrefix+excludeFlagShort && currentArgument != longFlagPrefix+excludeFlagName {
			normalized = append(normalized, currentArgument)
			continue
		}
		var names []string
		for argumentIndex+1 < len(arguments) && !strings.HasPrefix(arguments[argumentIndex+1], shortFlagPrefix) {
			argumentIndex++
			names = append(names, arguments[argumentIndex])
		}
		normalized = append(normalized, longFlagPrefix+excludeFlagName+flagValueSeparator+strings.Join(names, excludeNameSeparator))
	}
	return normalized
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			mode := options.selectedMode()
			if mode == "" {
				if options.input != "" {
					if _, inputError := resolveInput(deps.workingDirectory, options.input, mode); inputError != nil {
						return inputError
					}
				}
				printBanner(command.OutOrStdout(), utils.GetApplicationVersion())
				return command.Help()
			}
			return runMode(command, deps, options, mode)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.input, inputFlagName, inputFlagShorthand, "", inputFlagDescription)
	flagSet.StringSliceVarP(&options.excludeDirs, excludeFlagName, excludeFlagShort, nil, excludeFlagDescription)
	flagSet.StringVarP(&options.output, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flagSet.BoolVarP(&options.moc, mocFlagName, mocFlagShorthand, false, mocFlagDescription)
	flagSet.BoolVarP(&options.index, indexFlagName, indexFlagShorthand, false, indexFlagDescription)
	flagSet.BoolVarP(&options.tree, treeFlagName, treeFlagShorthand, false, treeFlagDescription)
	flagSet.BoolVarP(&options.dump, dumpFlagName, dumpFlagShorthand, false, dumpFlagDescription)
	flagSet.StringVar(&options.format, formatFlagName, "", formatFlagDescription)
	flagSet.BoolVar(&options.dryRun, dryRunFlagName, false, dryRunFlagDescription)
	registerToggleFlag(flagSet, &options.clipboardEnabled, clipboardFlagName, false, clipboardFlagDescription)
	registerToggleFlag(flagSet, &options.headingsEnabled, headingsFlagName, true, headingsFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVarP(&options.showVersion, versionFlagName, versionFlagShort, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(deps))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(deps dependencies) *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: deps.workingDirectory,
				HomeDirectory:    deps.homeDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&globalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runSettings is the fully resolved input of one mode.
type runSettings struct {
	target          types.ValidatedPath
	exclusions      filetree.ExclusionSet
	output          string
	format          string
	dryRun          bool
	clipboard       bool
	headings        bool
	startLevel      int
	stdout          io.Writer
	clipboardCopier clipboard.Copier
}

// runMode resolves configuration, exclusions and the input path, then dispatches to the mode.
// Input errors are returned; generation errors are logged by the mode itself.
func runMode(command *cobra.Command, deps dependencies, options rootOptions, mode string) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: deps.workingDirectory,
		ExplicitFilePath: options.configPath,
		HomeDirectory:    deps.homeDirectory,
	})
	if configurationError != nil {
		return configurationError
	}

	target, inputError := resolveInput(deps.workingDirectory, options.input, mode)
	if inputError != nil {
		return inputError
	}

	settings := runSettings{
		target:          target,
		exclusions:      filetree.NewExclusionSet(resolveExclusions(command, options, applicationConfiguration)...),
		output:          options.output,
		dryRun:          options.dryRun,
		clipboard:       options.clipboardEnabled,
		headings:        options.headingsEnabled,
		stdout:          command.OutOrStdout(),
		clipboardCopier: deps.copier,
	}
	if !command.Flags().Changed(clipboardFlagName) && applicationConfiguration.Tree.Clipboard != nil {
		settings.clipboard = *applicationConfiguration.Tree.Clipboard
	}
	if !command.Flags().Changed(headingsFlagName) && applicationConfiguration.MOC.Headings != nil {
		settings.headings = *applicationConfiguration.MOC.Headings
	}
	if applicationConfiguration.MOC.StartLevel != nil {
		settings.startLevel = *applicationConfiguration.MOC.StartLevel
	}
	settings.format = strings.ToLower(strings.TrimSpace(options.format))
	if settings.format == "" {
		settings.format = strings.ToLower(applicationConfiguration.Dump.Format)
	}
	if settings.format == "" {
		settings.format = types.FormatJSON
	}

	switch mode {
	case types.ModeMOC:
		runMOC(deps, settings)
	case types.ModeIndex:
		runIndex(deps, settings)
	case types.ModeTree:
		runTree(deps, settings)
	case types.ModeDump:
		if settings.format != types.FormatJSON && settings.format != types.FormatYAML {
			return fmt.Errorf(invalidFormatMessage, settings.format)
		}
		runDump(deps, settings)
	}
	return nil
}

// resolveExclusions prefers the flag, then the configuration, then the built-in list.
// An explicitly empty flag value disables every exclusion.
func resolveExclusions(command *cobra.Command, options rootOptions, applicationConfiguration config.ApplicationConfiguration) []string {
	if command.Flags().Changed(excludeFlagName) {
		return utils.DeduplicatePatterns(options.excludeDirs)
	}
	if len(applicationConfiguration.ExcludeDirs) > 0 {
		return applicationConfiguration.ExcludeDirs
	}
	return append([]string(nil), defaultExcludedDirectories...)
}

// resolveInput validates the --input path for the mode. Tree and dump fall back to the
// working directory; MOC and index require an input.
func resolveInput(workingDirectory string, input string, mode string) (types.ValidatedPath, error) {
	if input == "" {
		if mode == types.ModeMOC || mode == types.ModeIndex {
			return types.ValidatedPath{}, fmt.Errorf("--%s %w", mode, types.ErrMissingInput)
		}
		return types.ValidatedPath{Path: workingDirectory, Directory: workingDirectory, IsDir: true}, nil
	}

	cleanPath := filepath.Clean(input)
	lookupPath := cleanPath
	if !filepath.IsAbs(lookupPath) {
		lookupPath = filepath.Join(workingDirectory, lookupPath)
	}
	info, statError := os.Stat(lookupPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return types.ValidatedPath{}, fmt.Errorf("%w: %s", types.ErrPathNotFound, cleanPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, cleanPath, statError)
	}
	absolutePath, absoluteError := filepath.Abs(lookupPath)
	if absoluteError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, cleanPath, absoluteError)
	}
	if info.IsDir() {
		if mode == types.ModeIndex {
			return types.ValidatedPath{}, fmt.Errorf("%w: %s is a directory", types.ErrInvalidModeCombination, cleanPath)
		}
		return types.ValidatedPath{Path: absolutePath, Directory: absolutePath, IsDir: true}, nil
	}
	return types.ValidatedPath{Path: absolutePath, Directory: filepath.Dir(absolutePath), IsDir: false}, nil
}

// resolveOutputPath anchors a relative path at directory.
func resolveOutputPath(directory string, outputPath string) string {
	if outputPath == "" || filepath.IsAbs(outputPath) {
		return outputPath
	}
	return filepath.Join(directory, outputPath)
}
