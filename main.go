package main

import "github.com/anchore/kubeview-client/cmd"

func main() {
	cmd.Execute()
}
