// Relate command links two entities in the SQLite manager.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/manifold/pkg/types"
)

var relateCmd = &cobra.Command{
	Use:   "relate <source-ref> <kind> <target-ref>",
	Short: "Link two entities with a relationship kind",
	Long: `Relate records a directed relationship from source to target. The link
is appended after existing relationships of the same kind.

Example:
  manifold relate manifold-sqlite://shots/001 child manifold-sqlite://frames/0001`,
	Args: cobra.ExactArgs(3),
	RunE: runRelate,
}

func runRelate(cmd *cobra.Command, args []string) error {
	if sqliteBackend == nil {
		return fmt.Errorf("%w: relate requires the SQLite manager to be configured", types.ErrConfiguration)
	}

	source := types.EntityReference(args[0])
	target := types.EntityReference(args[2])
	if err := sqliteBackend.AddRelationship(source, args[1], target); err != nil {
		return fmt.Errorf("relate: %w", err)
	}

	fmt.Printf("%s -[%s]-> %s\n", source, args[1], target)
	return nil
}
