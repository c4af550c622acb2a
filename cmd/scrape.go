package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchore/kubeview-client/internal/kubeview"
	"github.com/anchore/kubeview-client/pkg"
	"github.com/anchore/kubeview-client/pkg/event"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape NAMESPACE",
	Short: "show the objects the kubeview API scraped from a namespace",
	Long: `Show the objects the kubeview API scraped from a namespace. Exits with status 1 when the API is not
allowed to read the namespace. Other API failures are logged and nothing is shown.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ns := args[0]
		err := run(func(ctx context.Context) error {
			return pkg.ReportNamespaceData(ctx, appConfig, ns)
		}, event.NamespaceDataRetrieved)
		if err != nil {
			if kubeview.IsForbidden(err) {
				fmt.Fprintf(os.Stderr, "access to namespace %q is forbidden: %v\n", ns, err)
			} else {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
