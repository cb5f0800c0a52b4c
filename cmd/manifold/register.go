// Register command publishes trait data to an entity reference.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/manifold/pkg/types"
)

var flagRegisterData string

var registerCmd = &cobra.Command{
	Use:   "register <ref>",
	Short: "Publish trait data to an entity reference",
	Long: `Register publishes trait data to the given reference. The data is a
JSON object mapping trait IDs to property maps.

Example:
  manifold register manifold-sqlite://shots/001 \
    --data '{"image": {}, "locatable": {"location": "/mnt/shots/001.exr"}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&flagRegisterData, "data", "", "trait data as JSON (trait ID -> property map)")
	registerCmd.MarkFlagRequired("data")
}

func runRegister(cmd *cobra.Command, args []string) error {
	data, err := parseTraitsData(flagRegisterData)
	if err != nil {
		return err
	}

	ctx, err := session.CreateContext()
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	final, err := session.RegisterOne(types.EntityReference(args[0]), data, types.AccessWrite, ctx)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	fmt.Println(final)
	return nil
}

// parseTraitsData builds trait data from a JSON object mapping trait
// IDs to property maps.
func parseTraitsData(raw string) (*types.TraitsData, error) {
	var byTrait map[string]map[string]any
	if err := json.Unmarshal([]byte(raw), &byTrait); err != nil {
		return nil, fmt.Errorf("%w: --data must be a JSON object of trait ID to property map: %v", types.ErrInvalidInput, err)
	}
	data := types.NewTraitsData()
	for traitID, props := range byTrait {
		data.AddTrait(traitID)
		for key, value := range props {
			data.SetProperty(traitID, key, value)
		}
	}
	return data, nil
}
