// Exists command checks which entity references exist.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var existsCmd = &cobra.Command{
	Use:   "exists <ref>...",
	Short: "Check which entity references exist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExists,
}

func runExists(cmd *cobra.Command, args []string) error {
	ctx, err := session.CreateContext()
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	refs := toRefs(args)
	results, err := session.ExistsResults(refs, ctx)
	if err != nil {
		return fmt.Errorf("exists: %w", err)
	}

	if flagJSON {
		byRef := map[string]any{}
		for i, result := range results {
			if !result.Ok() {
				byRef[refs[i].String()] = map[string]any{"error": result.Err.Error()}
				continue
			}
			byRef[refs[i].String()] = result.Value
		}
		out, err := json.MarshalIndent(byRef, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for i, result := range results {
		switch {
		case !result.Ok():
			fmt.Printf("%s: error: %s\n", refs[i], result.Err)
		case result.Value:
			fmt.Printf("%s: exists\n", refs[i])
		default:
			fmt.Printf("%s: missing\n", refs[i])
		}
	}
	return nil
}
