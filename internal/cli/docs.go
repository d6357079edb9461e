package cli

import (
	"github.com/spf13/cobra"

	"github.com/keshon/commandsync/internal/docs"
)

// NewDocsCommand creates the docs command, the README generator.
func NewDocsCommand(rootOpts *RootOptions) *cobra.Command {
	var tmplPath, outPath string

	c := &cobra.Command{
		Use:   "docs [dir]",
		Short: "Render the command reference into a Markdown file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := commandsDir(rootOpts, args)
			if err != nil {
				return err
			}
			loaded, errs := loadCommands(dir)
			for _, e := range errs {
				rootOpts.log().Warn("Skipping command", "err", e)
			}
			if outPath == "-" {
				tmpl, err := docs.LoadTemplate(tmplPath)
				if err != nil {
					return err
				}
				return docs.Render(cmd.OutOrStdout(), tmpl, loaded)
			}
			if err := docs.WriteFile(tmplPath, outPath, loaded); err != nil {
				return err
			}
			rootOpts.log().Info("Command reference written", "file", outPath, "commands", len(loaded))
			return nil
		},
	}

	c.Flags().StringVar(&tmplPath, "template", "", "text/template file with a {{.CommandSections}} placeholder")
	c.Flags().StringVarP(&outPath, "out", "o", "COMMANDS.md", "output file, - for stdout")
	return c
}
