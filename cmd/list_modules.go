package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/praetorian-inc/m365/internal/registry"
	"github.com/spf13/cobra"
)

var listModulesCmd = &cobra.Command{
	Use:   "list-modules",
	Short: "Display available m365 commands in a tree structure",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		displayModuleTree(cmd.OutOrStdout(), registry.Registry)
	},
}

func displayModuleTree(w io.Writer, r *registry.ModuleRegistry) {
	bold := color.New(color.Bold)
	if noColorFlag {
		bold.DisableColor()
	}

	hierarchy := r.GetHierarchy()
	for _, platform := range sortedKeys(hierarchy) {
		fmt.Fprintf(w, "\n%s\n", bold.Sprint(platform))

		seenPaths := make(map[string]bool)
		for _, category := range sortedKeys(hierarchy[platform]) {
			parts := strings.Fields(category)

			// Print intermediate commands
			for i := range parts {
				path := strings.Join(parts[:i+1], " ")
				if !seenPaths[path] {
					fmt.Fprintf(w, "%s├─ %s\n", strings.Repeat("  ", i), parts[i])
					seenPaths[path] = true
				}
			}

			for _, id := range hierarchy[platform][category] {
				command := strings.Join(append(append([]string{platform}, parts...), id), " ")
				entry, ok := r.GetRegistryEntry(command)
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s├─ %s - %s\n", strings.Repeat("  ", len(parts)), id, entry.Metadata.Description)
			}
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(listModulesCmd)
}
