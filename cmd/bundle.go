package cmd

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Devon-White/code-bundler/internal/bundler"
	"github.com/Devon-White/code-bundler/internal/config"
)

func newBundleCommand() *cobra.Command {
	var (
		opts       config.Options
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Bundle code files to a single file",
		Long: `Bundle concatenates the files of the current directory (non-recursive)
into the file given by --output.

Use --language all to include every file, or an extension such as "go" or "cs"
to include only matching files. Options can also be read from a YAML file with
--config; flags given on the command line take precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), opts, configPath)
			if err != nil {
				return err
			}

			res := bundler.Bundle(cfg)
			report(cmd.OutOrStdout(), res)
			if !res.OK() {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "file path and name (required)")
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "", "file extension to include, or 'all' (required)")
	cmd.Flags().BoolVarP(&opts.Note, "note", "n", false, "write the bundle path before each file's content")
	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "name", "sort order: 'name' or 'type'")
	cmd.Flags().BoolVarP(&opts.RemoveEmptyLines, "remove-empty-lines", "r", false, "remove empty lines from code files")
	cmd.Flags().StringVarP(&opts.Author, "author", "a", "", "name of the file creator")
	cmd.Flags().BoolVar(&opts.HTMLToMarkdown, "html-to-markdown", false, "convert .html/.htm files to markdown")
	cmd.Flags().StringVar(&opts.Selector, "selector", "", "CSS selector for the content of HTML files (default: auto-detect)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with default bundle options")

	return cmd
}

// resolveConfig layers flags set on the command line over the optional
// config file and validates the result.
func resolveConfig(flags *pflag.FlagSet, opts config.Options, configPath string) (config.BundleConfig, error) {
	if configPath == "" {
		return opts.Build()
	}

	merged, err := config.LoadFile(configPath)
	if err != nil {
		return config.BundleConfig{}, err
	}
	if flags.Changed("output") {
		merged.Output = opts.Output
	}
	if flags.Changed("language") {
		merged.Language = opts.Language
	}
	if flags.Changed("note") {
		merged.Note = opts.Note
	}
	if flags.Changed("sort") {
		merged.Sort = opts.Sort
	}
	if flags.Changed("remove-empty-lines") {
		merged.RemoveEmptyLines = opts.RemoveEmptyLines
	}
	if flags.Changed("author") {
		merged.Author = opts.Author
	}
	if flags.Changed("html-to-markdown") {
		merged.HTMLToMarkdown = opts.HTMLToMarkdown
	}
	if flags.Changed("selector") {
		merged.Selector = opts.Selector
	}
	return merged.Build()
}

func report(w io.Writer, res bundler.Result) {
	if res.OK() {
		color.New(color.FgGreen).Fprintln(w, res.Message())
		return
	}
	color.New(color.FgRed).Fprintln(w, res.Message())
}
