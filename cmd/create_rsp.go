package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Devon-White/code-bundler/internal/rsp"
)

func newCreateRspCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-rsp",
		Short: "Create a response file for the bundle command",
		Long: `create-rsp asks for each bundle option in turn and writes the answers to
responseFile.rsp in the current directory. Run the bundle with:

  bundler bundle @responseFile.rsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			path, err := createResponseFile(rsp.NewPrompter(cmd.InOrStdin(), out))
			if err != nil {
				color.New(color.FgRed).Fprintf(out, "Error creating response file: %v\n", err)
				return errReported
			}

			color.New(color.FgGreen).Fprintf(out, "Response file created successfully: %s\n", path)
			return nil
		},
	}
}

func createResponseFile(p *rsp.Prompter) (string, error) {
	path, err := filepath.Abs(rsp.DefaultFileName)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rsp.DefaultFileName, err)
	}

	tokens, err := p.Collect(rsp.Questions)
	if err != nil {
		return "", err
	}
	if err := rsp.Write(path, tokens); err != nil {
		return "", err
	}
	return path, nil
}
