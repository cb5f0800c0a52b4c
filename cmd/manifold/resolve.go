// Resolve command resolves trait data for entity references.
package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mediaforge/manifold/pkg/types"
)

var flagResolveTraits []string

var resolveCmd = &cobra.Command{
	Use:   "resolve <ref>...",
	Short: "Resolve trait data for entity references",
	Long: `Resolve queries the configured manager for the requested traits of each
reference.

Example:
  manifold resolve manifold-sqlite://shots/001 --trait locatable
  manifold resolve manifold-sqlite://shots/001 --trait locatable --trait image --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringArrayVar(&flagResolveTraits, "trait", nil, "trait ID to resolve (repeatable)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(flagResolveTraits) == 0 {
		return fmt.Errorf("%w: at least one --trait is required", types.ErrInvalidInput)
	}
	traits := types.NewTraitSet(flagResolveTraits...)

	ctx, err := session.CreateContext()
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	refs := toRefs(args)
	results, err := session.ResolveResults(refs, traits, types.AccessRead, ctx)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	if flagJSON {
		return printResolveJSON(refs, results)
	}
	for i, result := range results {
		if !result.Ok() {
			fmt.Printf("%s: error: %s\n", refs[i], result.Err)
			continue
		}
		fmt.Printf("%s:\n", refs[i])
		printTraitsData(result.Value)
	}
	return nil
}

// printResolveJSON renders per-reference outcomes as a JSON object
// keyed by reference.
func printResolveJSON(refs []types.EntityReference, results []types.Result[*types.TraitsData]) error {
	byRef := map[string]any{}
	for i, result := range results {
		if !result.Ok() {
			byRef[refs[i].String()] = map[string]any{"error": result.Err.Error()}
			continue
		}
		traits := map[string]any{}
		for _, traitID := range result.Value.TraitSet().IDs() {
			traits[traitID] = result.Value.Properties(traitID)
		}
		byRef[refs[i].String()] = traits
	}
	out, err := json.MarshalIndent(byRef, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printTraitsData prints trait properties in human-readable form.
func printTraitsData(data *types.TraitsData) {
	for _, traitID := range data.TraitSet().IDs() {
		fmt.Printf("  %s:\n", traitID)
		props := data.Properties(traitID)
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("    %s: %v\n", k, props[k])
		}
	}
}

// toRefs converts raw CLI arguments to entity references.
func toRefs(args []string) []types.EntityReference {
	refs := make([]types.EntityReference, len(args))
	for i, arg := range args {
		refs[i] = types.EntityReference(arg)
	}
	return refs
}
