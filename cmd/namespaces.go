package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchore/kubeview-client/pkg"
	"github.com/anchore/kubeview-client/pkg/event"
	"github.com/anchore/kubeview-client/pkg/mode"
)

var namespacesCmd = &cobra.Command{
	Use:   "namespaces",
	Short: "list the namespaces seen by the kubeview API",
	Long: `List the namespaces seen by the kubeview API. Names given with --include are kept, then names given
with --exclude are dropped. In periodic mode the list is fetched again every polling interval.`,
	Args: cobra.NoArgs,
	RunE: runNamespaces,
}

func init() {
	rootCmd.AddCommand(namespacesCmd)

	for _, c := range []*cobra.Command{rootCmd, namespacesCmd} {
		setNamespaceSelectionFlags(c)
	}
}

func setNamespaceSelectionFlags(c *cobra.Command) {
	c.Flags().StringSlice("include", nil, "only show these namespaces (comma separated)")
	c.Flags().StringSlice("exclude", nil, "never show these namespaces (comma separated)")
	c.Flags().Bool("exclude-system", false, "never show kube-system, kube-public and kube-node-lease")
	c.Flags().Bool("patterns", false, "treat include/exclude entries that are not namespace names as regular expressions")
}

// applyNamespaceSelectionFlags overrides the configured selection with the flags given on the command line
func applyNamespaceSelectionFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("include") {
		if appConfig.Namespaces.Include, err = flags.GetStringSlice("include"); err != nil {
			return err
		}
	}
	if flags.Changed("exclude") {
		if appConfig.Namespaces.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return err
		}
	}
	if flags.Changed("exclude-system") {
		if appConfig.Namespaces.ExcludeSystem, err = flags.GetBool("exclude-system"); err != nil {
			return err
		}
	}
	if flags.Changed("patterns") {
		if appConfig.Namespaces.Patterns, err = flags.GetBool("patterns"); err != nil {
			return err
		}
	}
	return appConfig.Namespaces.Filter().Validate()
}

func runNamespaces(cmd *cobra.Command, _ []string) error {
	if err := applyNamespaceSelectionFlags(cmd); err != nil {
		return err
	}

	err := run(func(ctx context.Context) error {
		if appConfig.RunMode == mode.PeriodicPolling {
			return pkg.PeriodicallyReportNamespaces(ctx, appConfig)
		}
		return pkg.ReportNamespaces(ctx, appConfig)
	}, event.NamespacesRetrieved)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	return nil
}
