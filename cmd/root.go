package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd lists the namespaces when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kubeview",
	Short: "kubeview shows what the kubeview API sees in your Kubernetes cluster",
	Long: `kubeview talks to a kubeview API server. It lists the namespaces the server can see, filtered by the
configured include/exclude lists, and shows the objects scraped from a single namespace.`,
	Args: cobra.NoArgs,
	RunE: runNamespaces,
}
