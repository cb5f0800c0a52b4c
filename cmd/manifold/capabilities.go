// Capabilities command lists the capabilities the configured manager
// reports.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/manifold/pkg/types"
)

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List the capabilities the configured manager supports",
	Long: `Capabilities reports every known capability with its support status.
With multiple managers composed, a capability is supported when any
constituent supports it.`,
	Args: cobra.NoArgs,
	RunE: runCapabilities,
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	if flagJSON {
		supported := map[string]bool{}
		for _, capability := range types.AllCapabilities() {
			supported[capability.String()] = session.HasCapability(capability)
		}
		out, err := json.MarshalIndent(supported, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal capabilities: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for _, capability := range types.AllCapabilities() {
		marker := " "
		if session.HasCapability(capability) {
			marker = "x"
		}
		fmt.Printf("[%s] %s\n", marker, capability)
	}
	return nil
}
