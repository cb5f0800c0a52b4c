// Related command lists entities related to a reference.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/manifold/pkg/types"
)

var (
	flagRelatedTraits   []string
	flagRelatedPageSize int
)

var relatedCmd = &cobra.Command{
	Use:   "related <ref> <kind>",
	Short: "List entities related to a reference",
	Long: `Related pages through the entities linked to the given reference by the
given relationship kind. With --trait, only targets carrying every
listed trait are returned.

Example:
  manifold related manifold-sqlite://shots/001 child
  manifold related manifold-sqlite://shots/001 child --trait image`,
	Args: cobra.ExactArgs(2),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().StringArrayVar(&flagRelatedTraits, "trait", nil, "trait the related entities must carry (repeatable)")
	relatedCmd.Flags().IntVar(&flagRelatedPageSize, "page-size", 50, "page size for relationship queries")
}

func runRelated(cmd *cobra.Command, args []string) error {
	relationship := types.NewTraitsData()
	relationship.AddTrait(args[1])

	ctx, err := session.CreateContext()
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	pager, err := session.GetWithRelationshipOne(types.EntityReference(args[0]), relationship,
		types.NewTraitSet(flagRelatedTraits...), flagRelatedPageSize, types.AccessRead, ctx)
	if err != nil {
		return fmt.Errorf("related: %w", err)
	}
	defer pager.Close()

	var refs []string
	for {
		for _, ref := range pager.Get() {
			refs = append(refs, ref.String())
		}
		if !pager.HasNext() {
			break
		}
		pager.Next()
	}

	if flagJSON {
		out, err := json.MarshalIndent(refs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal refs: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	for _, ref := range refs {
		fmt.Println(ref)
	}
	return nil
}
