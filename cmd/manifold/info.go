// Info command prints the configured manager's identity and metadata.
package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the configured manager's identity and metadata",
	Long: `Info prints the identifier, display name, and descriptive metadata of
the configured manager. With multiple managers composed, identity comes
from the first-listed manager and metadata entries merge with earlier
managers winning key conflicts.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	info := session.Info()
	settings := session.Settings()

	if flagJSON {
		out, err := json.MarshalIndent(map[string]any{
			"identifier":  session.Identifier(),
			"displayName": session.DisplayName(),
			"info":        info,
			"settings":    settings,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal info: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Identifier:   %s\n", session.Identifier())
	fmt.Printf("Display name: %s\n", session.DisplayName())
	printSortedMap("Info", info)
	printSortedMap("Settings", settings)
	return nil
}

// printSortedMap prints a heading and map entries in key order.
func printSortedMap(heading string, entries map[string]any) {
	if len(entries) == 0 {
		return
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("%s:\n", heading)
	for _, k := range keys {
		fmt.Printf("  %s: %v\n", k, entries[k])
	}
}
