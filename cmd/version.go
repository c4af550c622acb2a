package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchore/kubeview-client/internal"
	"github.com/anchore/kubeview-client/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "show the version",
	Args:  cobra.NoArgs,
	Run:   printVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(_ *cobra.Command, _ []string) {
	versionInfo := version.FromBuild()
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	err := enc.Encode(&struct {
		version.Version
		Application string `json:"application"`
	}{
		Version:     versionInfo,
		Application: internal.ApplicationName,
	})
	if err != nil {
		fmt.Printf("failed to show version information: %+v\n", err)
		os.Exit(1)
	}
}
