package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Devon-White/code-bundler/internal/rsp"
)

// errReported marks a failure whose message was already shown to the user.
var errReported = errors.New("reported")

// NewRootCommand builds the bundler command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "bundler",
		Short: "Bundle code files from the current directory into a single file",
		Long: `bundler concatenates the files of the current directory into one bundle file.

Files can be filtered by language (file extension), ordered by name or type,
stripped of empty lines and annotated with an author header and notes.

Options may be recorded once with 'bundler create-rsp' and replayed with
'bundler bundle @responseFile.rsp'.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newBundleCommand())
	rootCmd.AddCommand(newCreateRspCommand())

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	args, err := rsp.ExpandArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return err
	}
	return nil
}
