// Package cli provides the command line interface.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pathtree/internal/commands"
	"github.com/temirov/pathtree/internal/config"
	"github.com/temirov/pathtree/internal/filesystem"
	"github.com/temirov/pathtree/internal/output"
	"github.com/temirov/pathtree/internal/scanner"
	"github.com/temirov/pathtree/internal/services/clipboard"
	"github.com/temirov/pathtree/internal/utils"
)

const (
	rootUse              = "pathtree [path]"
	rootShortDescription = "render a directory hierarchy as a tree"
	rootLongDescription  = `pathtree lists every regular file below a directory, reconstructs the
directories between them and prints the hierarchy as a tree followed by a summary.
Use --stdin to render a list of paths instead of scanning, --max to limit the
displayed depth, and --details to describe every entry.`
	rootUsageExample = `  # Render the current directory two levels deep
  pathtree -m 2

  # Render paths read from standard input below an explicit root
  find /srv/app -name '*.go' | pathtree --stdin --root /srv/app`

	defaultPath = "."

	maxDepthFlagName      = "max"
	maxDepthFlagShorthand = "m"
	rootFlagName          = "root"
	stdinFlagName         = "stdin"
	detailsFlagName       = "details"
	tagsFlagName          = "tags"
	colorFlagName         = "color"
	copyFlagName          = "copy"
	configFlagName        = "config"
	debugFlagName         = "debug"
	versionFlagName       = "version"

	maxDepthFlagDescription = "maximum displayed depth below the root"
	rootFlagDescription     = "root of the rendered tree (defaults to the scanned directory or the common root of the input)"
	stdinFlagDescription    = "read newline separated paths from standard input instead of scanning"
	detailsFlagDescription  = "describe every entry after the tree"
	tagsFlagDescription     = "fingerprint file contents while scanning"
	colorFlagDescription    = "style the output when the terminal supports it"
	copyFlagDescription     = "copy the rendered output to the clipboard"
	configFlagDescription   = "configuration file (defaults to " + utils.LocalConfigFileName + ")"
	debugFlagDescription    = "log debug details to standard error"
	versionFlagDescription  = "display application version"

	versionTemplate = "pathtree version: %s\n"

	errorLoggerFormat        = "initialize logger: %w"
	errorNegativeDepthFormat = "invalid --%s value %d: depth must not be negative"
	errorStdinWithPath       = "a path argument cannot be combined with --stdin"
	errorReadStdinFormat     = "reading paths from standard input: %w"
	errorClipboardFormat     = "copy output to clipboard: %w"
	errorWriteOutputFormat   = "write output: %w"
	warningPartialScan       = "Some directories could not be read; the tree is incomplete."
)

// Dependencies are the process level collaborators of the command.
type Dependencies struct {
	Stdin            io.Reader
	Stdout           io.Writer
	Stderr           io.Writer
	Copier           clipboard.Copier
	NewLogger        func(debug bool) (*zap.Logger, error)
	WorkingDirectory string
}

func defaultDependencies() Dependencies {
	return Dependencies{
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Copier:    clipboard.NewService(),
		NewLogger: utils.NewApplicationLogger,
	}
}

// Execute runs pathtree with the process arguments.
func Execute() error {
	return run(defaultDependencies(), os.Args[1:])
}

func run(dependencies Dependencies, arguments []string) error {
	rootCommand := newRootCommand(dependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand.Flags(), arguments))
	return rootCommand.Execute()
}

// treeOptions stores the values of the root command flags.
type treeOptions struct {
	maxDepth     int
	explicitRoot string
	fromStdin    bool
	configPath   string
	debug        bool
	showVersion  bool
	details      optionalBoolean
	tags         optionalBoolean
	color        optionalBoolean
	copy         optionalBoolean
}

// treeSettings is the outcome of merging flags over configuration.
type treeSettings struct {
	path         string
	explicitRoot string
	fromStdin    bool
	maxDepth     int
	hasMaxDepth  bool
	details      bool
	tags         bool
	color        bool
	copy         bool
}

// newRootCommand builds the root Cobra command.
func newRootCommand(dependencies Dependencies) *cobra.Command {
	var options treeOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			command.SilenceUsage = true
			if options.showVersion {
				_, writeError := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return writeError
			}
			logger, loggerError := dependencies.NewLogger(options.debug)
			if loggerError != nil {
				return fmt.Errorf(errorLoggerFormat, loggerError)
			}
			defer func() { _ = logger.Sync() }()

			configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: dependencies.WorkingDirectory,
				ExplicitFilePath: options.configPath,
			})
			if configurationError != nil {
				return configurationError
			}
			settings, settingsError := resolveSettings(command, options, configuration.Tree, arguments)
			if settingsError != nil {
				return settingsError
			}
			return runTree(dependencies, logger, settings)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.IntVarP(&options.maxDepth, maxDepthFlagName, maxDepthFlagShorthand, 0, maxDepthFlagDescription)
	flagSet.StringVar(&options.explicitRoot, rootFlagName, "", rootFlagDescription)
	flagSet.BoolVar(&options.fromStdin, stdinFlagName, false, stdinFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, os.Getenv(utils.ConfigEnvironmentVariable), configFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	registerOptionalBooleanFlag(flagSet, &options.details, detailsFlagName, detailsFlagDescription)
	registerOptionalBooleanFlag(flagSet, &options.tags, tagsFlagName, tagsFlagDescription)
	registerOptionalBooleanFlag(flagSet, &options.color, colorFlagName, colorFlagDescription)
	registerOptionalBooleanFlag(flagSet, &options.copy, copyFlagName, copyFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&options.debug, debugFlagName, false, debugFlagDescription)

	rootCommand.AddCommand(newInitCommand(dependencies))
	return rootCommand
}

func resolveSettings(command *cobra.Command, options treeOptions, configuration config.TreeConfiguration, arguments []string) (treeSettings, error) {
	settings := treeSettings{
		path:         defaultPath,
		explicitRoot: options.explicitRoot,
		fromStdin:    options.fromStdin,
		details:      options.details.resolve(configuration.Details, false),
		tags:         options.tags.resolve(configuration.Tags, false),
		color:        options.color.resolve(configuration.Color, true),
		copy:         options.copy.resolve(configuration.Copy, false),
	}
	if len(arguments) > 0 {
		if options.fromStdin {
			return treeSettings{}, errors.New(errorStdinWithPath)
		}
		settings.path = arguments[0]
	}
	switch {
	case command.Flags().Changed(maxDepthFlagName):
		settings.maxDepth = options.maxDepth
		settings.hasMaxDepth = true
	case configuration.MaxDepth != nil:
		settings.maxDepth = *configuration.MaxDepth
		settings.hasMaxDepth = true
	}
	if settings.hasMaxDepth && settings.maxDepth < 0 {
		return treeSettings{}, fmt.Errorf(errorNegativeDepthFormat, maxDepthFlagName, settings.maxDepth)
	}
	return settings, nil
}

// runTree builds the hierarchy, prints it and optionally copies it. Messages for
// a missing root are printed before the corresponding error is returned.
func runTree(dependencies Dependencies, logger *zap.Logger, settings treeSettings) error {
	fileSystem, buildError := buildFileSystem(dependencies, logger, settings)
	if buildError != nil && !errors.Is(buildError, filesystem.ErrNoCommonRoot) {
		return buildError
	}

	treeBuilder := newTreeBuilder(output.NewTheme(dependencies.Stdout, settings.color), logger, settings)
	rendered, renderError := renderOutput(treeBuilder, fileSystem, settings)
	if _, writeError := fmt.Fprintln(dependencies.Stdout, rendered); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, writeError)
	}
	if renderError != nil {
		return renderError
	}

	if settings.copy {
		plainText, plainRenderError := renderOutput(newTreeBuilder(output.PlainTheme(), logger, settings), fileSystem, settings)
		if plainRenderError != nil {
			return plainRenderError
		}
		if copyError := dependencies.Copier.Copy(plainText); copyError != nil {
			return fmt.Errorf(errorClipboardFormat, copyError)
		}
	}
	return nil
}

func newTreeBuilder(theme output.Theme, logger *zap.Logger, settings treeSettings) *commands.TreeBuilder {
	treeBuilder := commands.NewTreeBuilder(theme, logger)
	if settings.hasMaxDepth {
		treeBuilder.SetMaxDepth(settings.maxDepth)
	}
	return treeBuilder
}

func renderOutput(treeBuilder *commands.TreeBuilder, fileSystem *filesystem.FileSystem, settings treeSettings) (string, error) {
	rendered, renderError := treeBuilder.RenderTree(fileSystem)
	if renderError != nil || !settings.details {
		return rendered, renderError
	}
	return rendered + "\n\n" + treeBuilder.DescribeEntries(fileSystem), nil
}

func buildFileSystem(dependencies Dependencies, logger *zap.Logger, settings treeSettings) (*filesystem.FileSystem, error) {
	fileSystem := filesystem.New(logger)
	if settings.fromStdin {
		paths, readError := readPathList(dependencies.Stdin)
		if readError != nil {
			return nil, readError
		}
		return fileSystem, fileSystem.FromPathList(paths, settings.explicitRoot)
	}

	scanPath := joinWorkingDirectory(dependencies.WorkingDirectory, settings.path)
	result, scanError := scanner.New(scanner.Options{ComputeTags: settings.tags, Logger: logger}).Scan(scanPath)
	if scanError != nil {
		var rootScanError *scanner.ScanError
		if errors.As(scanError, &rootScanError) && rootScanError.Root {
			return nil, scanError
		}
		fmt.Fprintln(dependencies.Stderr, warningPartialScan)
	}
	explicitRoot := result.Root
	if settings.explicitRoot != "" {
		explicitRoot = resolveScanRoot(dependencies.WorkingDirectory, settings.explicitRoot)
	}
	return fileSystem, fileSystem.FromEntryList(commands.EntriesFromScan(result.Files), explicitRoot)
}

func joinWorkingDirectory(workingDirectory string, path string) string {
	if workingDirectory == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDirectory, path)
}

// resolveScanRoot brings an explicit root into the form of scanned paths:
// absolute, free of symbolic links and slash separated. A root that does not
// exist is only cleaned.
func resolveScanRoot(workingDirectory string, explicitRoot string) string {
	rootPath := joinWorkingDirectory(workingDirectory, explicitRoot)
	if absoluteRoot, absoluteError := filepath.Abs(rootPath); absoluteError == nil {
		rootPath = absoluteRoot
	}
	if resolvedRoot, resolveError := filepath.EvalSymlinks(rootPath); resolveError == nil {
		rootPath = resolvedRoot
	} else {
		rootPath = filepath.Clean(rootPath)
	}
	return filepath.ToSlash(rootPath)
}

// readPathList returns the non-blank lines of reader with surrounding spaces removed.
func readPathList(reader io.Reader) ([]string, error) {
	var paths []string
	lineScanner := bufio.NewScanner(reader)
	for lineScanner.Scan() {
		line := strings.TrimSpace(lineScanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if scanError := lineScanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadStdinFormat, scanError)
	}
	return paths, nil
}
