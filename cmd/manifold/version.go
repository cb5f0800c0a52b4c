// Version command for the manifold CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/manifold/pkg/manifold"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("manifold v%s\n", manifold.Version)
	},
}
