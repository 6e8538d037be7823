package cmd

import (
	"github.com/praetorian-inc/m365/internal/message"
	"github.com/praetorian-inc/m365/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docDir string

var docCmd = &cobra.Command{
	Use:   "gendoc",
	Short: "Generate Markdown documentation",
	Long:  `Generate Markdown documentation for the CLI and its subcommands.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		excludedCmds := []string{"gendoc", "completion"}
		for _, c := range rootCmd.Commands() {
			for _, e := range excludedCmds {
				if c.Name() == e {
					rootCmd.RemoveCommand(c)
					break
				}
			}
		}
		rootCmd.DisableAutoGenTag = true

		if err := utils.EnsureDirectoryExists(docDir); err != nil {
			return err
		}

		if err := doc.GenMarkdownTree(rootCmd, docDir); err != nil {
			return err
		}
		message.Success("Documentation generated in %s", docDir)
		return nil
	},
}

func init() {
	docCmd.Flags().StringVar(&docDir, "dir", "./docs", "output directory")
	rootCmd.AddCommand(docCmd)
}
