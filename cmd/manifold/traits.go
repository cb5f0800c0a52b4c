// Traits command lists the trait set of an entity reference.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/manifold/pkg/types"
)

var traitsCmd = &cobra.Command{
	Use:   "traits <ref>",
	Short: "List the traits of an entity",
	Args:  cobra.ExactArgs(1),
	RunE:  runTraits,
}

func runTraits(cmd *cobra.Command, args []string) error {
	ctx, err := session.CreateContext()
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	traits, err := session.EntityTraitsOne(types.EntityReference(args[0]), types.AccessRead, ctx)
	if err != nil {
		return fmt.Errorf("entity traits: %w", err)
	}

	if flagJSON {
		out, err := json.MarshalIndent(traits.IDs(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal traits: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for _, traitID := range traits.IDs() {
		fmt.Println(traitID)
	}
	return nil
}
