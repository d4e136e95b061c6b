// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/clipboard"
	"github.com/temirov/ingest/internal/config"
	"github.com/temirov/ingest/internal/digest"
	"github.com/temirov/ingest/internal/ignore"
	"github.com/temirov/ingest/internal/output"
	"github.com/temirov/ingest/internal/source"
	"github.com/temirov/ingest/internal/tokenizer"
	"github.com/temirov/ingest/internal/utils"
)

const (
	rootUse              = "ingest"
	rootShortDescription = "ingest command line interface"
	rootLongDescription  = `ingest flattens a repository into a single text digest for LLM context windows.
It renders a directory tree followed by the fenced contents of every non-ignored text file.
The source may be a local directory or a remote repository URL, which is shallow-cloned into ephemeral storage.`

	digestUse              = "digest <source>"
	digestAlias            = "d"
	digestShortDescription = "build a repository digest (" + digestAlias + ")"
	digestLongDescription  = `Build the digest for a local directory or remote repository URL.
Remote sources are shallow-cloned into a temporary directory that is removed when the run finishes.
Use -o to choose the output file ("-" streams to stdout), --no-tree to drop the directory listing,
and -e to add extra gitignore-style exclusion patterns.`
	digestUsageExample = `  # Digest the current directory into digest.md
  ingest digest .

  # Digest a remote repository to stdout
  ingest digest https://github.com/golang/example -o -

  # Exclude generated code and report token usage
  ingest digest . -e "*.pb.go" --tokens`

	outputFlagName     = "output"
	outputFlagShort    = "o"
	noTreeFlagName     = "no-tree"
	noGitignoreFlag    = "no-gitignore"
	excludeFlagName    = "exclude"
	excludeFlagShort   = "e"
	tokensFlagName     = "tokens"
	modelFlagName      = "model"
	copyFlagName       = "copy"
	copyFlagShort      = "c"
	configFlagName     = "config"
	versionFlagName    = "version"
	versionTemplate    = "ingest version: %s\n"
	defaultOutputPath  = "digest.md"
	versionDescription = "display application version"

	outputFlagDescription      = "output file path, '-' for stdout"
	noTreeFlagDescription      = "omit the directory structure section"
	noGitignoreFlagDescription = "do not use .gitignore or .git/info/exclude"
	excludeFlagDescription     = "additional gitignore-style exclusion pattern"
	tokensFlagDescription      = "report the digest's token count"
	modelFlagDescription       = "tokenizer model used for token counting"
	copyFlagDescription        = "copy the digest to the clipboard"
	configFlagDescription      = "path to a configuration file"
)

// Execute runs the ingest application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionDescription)
	rootCommand.AddCommand(createDigestCommand(logger))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// digestOptions stores resolved flag and configuration values for one run.
type digestOptions struct {
	outputPath        string
	omitTree          bool
	disableGitignore  bool
	exclusionPatterns []string
	tokensEnabled     bool
	tokenModel        string
	copyToClipboard   bool
	configFilePath    string
}

// createDigestCommand returns the digest subcommand.
func createDigestCommand(logger *zap.Logger) *cobra.Command {
	var options digestOptions

	digestCommand := &cobra.Command{
		Use:     digestUse,
		Aliases: []string{digestAlias},
		Short:   digestShortDescription,
		Long:    digestLongDescription,
		Example: digestUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applyConfigurationDefaults(command, &options)
			return runDigest(command, arguments[0], options, logger)
		},
	}

	digestCommand.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShort, defaultOutputPath, outputFlagDescription)
	digestCommand.Flags().BoolVar(&options.omitTree, noTreeFlagName, false, noTreeFlagDescription)
	digestCommand.Flags().BoolVar(&options.disableGitignore, noGitignoreFlag, false, noGitignoreFlagDescription)
	digestCommand.Flags().StringArrayVarP(&options.exclusionPatterns, excludeFlagName, excludeFlagShort, nil, excludeFlagDescription)
	digestCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	digestCommand.Flags().StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	digestCommand.Flags().BoolVarP(&options.copyToClipboard, copyFlagName, copyFlagShort, false, copyFlagDescription)
	digestCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	return digestCommand
}

// applyConfigurationDefaults overlays configuration-file values onto options
// for every flag the user did not set explicitly on the command line.
func applyConfigurationDefaults(command *cobra.Command, options *digestOptions) {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring configuration: %v\n", configurationError)
		return
	}
	digestConfiguration := applicationConfiguration.Digest

	flagSet := command.Flags()
	if !flagSet.Changed(outputFlagName) && digestConfiguration.Output != "" {
		options.outputPath = digestConfiguration.Output
	}
	if !flagSet.Changed(noTreeFlagName) && digestConfiguration.Tree != nil {
		options.omitTree = !*digestConfiguration.Tree
	}
	if !flagSet.Changed(noGitignoreFlag) && digestConfiguration.Paths.UseGitignore != nil {
		options.disableGitignore = !*digestConfiguration.Paths.UseGitignore
	}
	if !flagSet.Changed(tokensFlagName) && digestConfiguration.Tokens.Enabled != nil {
		options.tokensEnabled = *digestConfiguration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && digestConfiguration.Tokens.Model != "" {
		options.tokenModel = digestConfiguration.Tokens.Model
	}
	if !flagSet.Changed(copyFlagName) && digestConfiguration.Clipboard != nil {
		options.copyToClipboard = *digestConfiguration.Clipboard
	}
	options.exclusionPatterns = utils.DeduplicatePatterns(
		append(append([]string{}, digestConfiguration.Paths.Exclude...), options.exclusionPatterns...),
	)
}

// runDigest resolves the source, assembles the digest, and hands it to the
// configured sinks. Cleanup of ephemeral clone storage is guaranteed on every
// exit path.
func runDigest(command *cobra.Command, rawSource string, options digestOptions, logger *zap.Logger) error {
	resolvedRoot, cleanup, resolveError := source.Resolve(command.Context(), rawSource, logger)
	if resolveError != nil {
		return resolveError
	}
	defer cleanup()

	assembler := digest.Assembler{
		Diagnostics: zapDiagnostics{logger: logger},
		OmitTree:    options.omitTree,
		IgnoreOptions: ignore.Options{
			SkipRepositoryFiles: options.disableGitignore,
			ExtraPatterns:       options.exclusionPatterns,
		},
	}
	assembled, assembleError := assembler.Assemble(resolvedRoot.Path, resolvedRoot.DisplayName)
	if assembleError != nil {
		return assembleError
	}

	if writeError := output.NewSink(options.outputPath).Write(assembled.Digest); writeError != nil {
		return writeError
	}
	if options.outputPath != output.StdoutPath {
		logger.Info("digest written",
			zap.String("output", options.outputPath),
			zap.Int("skipped", len(assembled.Notices)))
	}

	if options.tokensEnabled {
		reportTokenCount(assembled.Digest, options.tokenModel, logger)
	}
	if options.copyToClipboard {
		if copyError := clipboard.NewService().Copy(assembled.Digest); copyError != nil {
			logger.Warn("failed to copy digest to clipboard", zap.Error(copyError))
		}
	}
	return nil
}

// reportTokenCount logs the digest's token count; failures degrade to warnings.
func reportTokenCount(digestText string, modelName string, logger *zap.Logger) {
	counter, selectedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: modelName})
	if counterError != nil {
		logger.Warn("failed to initialize tokenizer", zap.Error(counterError))
		return
	}
	tokenCount, countError := counter.CountString(digestText)
	if countError != nil {
		logger.Warn("failed to count tokens", zap.Error(countError))
		return
	}
	logger.Info("digest token count",
		zap.Int("tokens", tokenCount),
		zap.String("model", selectedModel))
}

// zapDiagnostics forwards digest notices to the application logger.
type zapDiagnostics struct {
	logger *zap.Logger
}

// Notify logs a skipped entry without affecting the digest.
func (diagnostics zapDiagnostics) Notify(notice digest.Notice) {
	if diagnostics.logger == nil {
		return
	}
	diagnostics.logger.Warn("skipped during digest",
		zap.String("path", notice.Path),
		zap.String("reason", notice.Reason))
}

var _ digest.DiagnosticsSink = zapDiagnostics{}
