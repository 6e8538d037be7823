package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/praetorian-inc/m365/internal/registry"
	"github.com/praetorian-inc/m365/modules"
	o "github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// globalOptions are the persistent output flags every command reads.
var globalOptions = []*types.Option{
	&o.OutputOpt,
	&o.QueryOpt,
	&o.FileNameOpt,
}

// generateCommands builds the command tree based on registered modules
func generateCommands(root *cobra.Command) {
	hierarchy := registry.GetHierarchy()

	for _, platform := range sortedKeys(hierarchy) {
		platformCmd := subcommand(root, platform, fmt.Sprintf("%s commands", platform))

		for _, category := range sortedKeys(hierarchy[platform]) {
			parent := platformCmd
			path := strings.Fields(category)
			for i, word := range path {
				parent = subcommand(parent, word, fmt.Sprintf("%s %s commands", platform, strings.Join(path[:i+1], " ")))
			}

			for _, id := range hierarchy[platform][category] {
				command := strings.Join(append(append([]string{platform}, path...), id), " ")
				generateModuleCommand(command, parent, root.PersistentFlags())
			}
		}
	}
}

// subcommand returns the child of parent named use, creating a grouping
// command when it does not exist yet.
func subcommand(parent *cobra.Command, use, short string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == use {
			return c
		}
	}

	c := &cobra.Command{
		Use:   use,
		Short: short,
	}
	parent.AddCommand(c)
	return c
}

func generateModuleCommand(command string, parent *cobra.Command, inherited *pflag.FlagSet) {
	entry, ok := registry.GetRegistryEntry(command)
	if !ok {
		return
	}

	cmd := &cobra.Command{
		Use:   entry.Metadata.Id,
		Short: entry.Metadata.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, entry)
		},
	}

	seen := make(map[string]bool)
	for _, opt := range entry.Options {
		if seen[opt.Name] {
			continue
		}
		seen[opt.Name] = true
		addFlag(cmd, inherited, opt)
	}

	parent.AddCommand(cmd)
}

// isShorthandAvailable checks if a shorthand flag is already in use
func isShorthandAvailable(flags *pflag.FlagSet, shorthand string) bool {
	if shorthand == "" {
		return false
	}
	found := false
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Shorthand == shorthand {
			found = true
		}
	})
	return !found
}

// addFlag registers opt on cmd. Required options are not marked with cobra
// so that missing values are reported by option validation.
func addFlag(cmd *cobra.Command, inherited *pflag.FlagSet, opt *types.Option) {
	shorthand := ""
	if isShorthandAvailable(cmd.Flags(), opt.Short) && isShorthandAvailable(inherited, opt.Short) {
		shorthand = opt.Short
	}

	description := opt.Description
	if opt.Required {
		description = description + " (required)"
	}
	if len(opt.ValueList) > 0 {
		description = fmt.Sprintf("%s (%s)", description, strings.Join(opt.ValueList, "|"))
	}

	switch opt.Type {
	case types.Bool:
		value, _ := strconv.ParseBool(opt.Value)
		cmd.Flags().BoolP(opt.Name, shorthand, value, description)
	case types.Int:
		value, _ := strconv.Atoi(opt.Value)
		cmd.Flags().IntP(opt.Name, shorthand, value, description)
	default:
		cmd.Flags().StringP(opt.Name, shorthand, opt.Value, description)
	}
}

// getOptsFromCmd copies defs and fills in the values parsed from the flags.
func getOptsFromCmd(cmd *cobra.Command, defs []*types.Option) []*types.Option {
	opts := o.CreateDeepCopyOfOptions(defs)
	for _, opt := range opts {
		flag := cmd.Flags().Lookup(opt.Name)
		if flag == nil {
			continue
		}
		opt.Value = flag.Value.String()
	}
	return opts
}

// getOpts collects global and command options and runs the generic checks.
func getOpts(cmd *cobra.Command, defs []*types.Option) ([]*types.Option, error) {
	global := getOptsFromCmd(cmd, globalOptions)
	if err := o.ValidateOptions(global, globalOptions); err != nil {
		return nil, err
	}

	opts := getOptsFromCmd(cmd, defs)
	if err := o.ValidateOptions(opts, defs); err != nil {
		return nil, err
	}

	return append(global, opts...), nil
}

func runCommand(cmd *cobra.Command, entry registry.RegistryEntry) error {
	opts, err := getOpts(cmd, entry.Options)
	if err != nil {
		return err
	}
	if entry.Validate != nil {
		if err := entry.Validate(opts); err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	run := types.NewRun()
	module, err := entry.Factory(opts, newSession(), run)
	if err != nil {
		return err
	}

	slog.Debug("Running command", "command", entry.Metadata.Command())
	return runModule(ctx, module, run)
}

// runModule invokes module and writes every result it sends to each of its
// output providers. The first invoke or write error is returned.
func runModule(ctx context.Context, module modules.Module, run types.Run) error {
	var (
		writeErr error
		once     sync.Once
	)

	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for result := range run.Data {
			g := new(errgroup.Group)
			for _, provider := range module.GetOutputProviders() {
				g.Go(func() error {
					return provider.Write(result)
				})
			}
			if err := g.Wait(); err != nil {
				once.Do(func() { writeErr = err })
			}
		}
	}()

	err := module.Invoke(ctx)
	close(run.Data)
	wg.Wait()

	if err != nil {
		return err
	}
	return writeErr
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
