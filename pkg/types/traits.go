package types

import "sort"

// TraitSet is the set of trait identifiers describing an entity's
// "type". The map value is always true; a trait is a member iff its
// key is present.
type TraitSet map[string]bool

// NewTraitSet builds a TraitSet from the given trait identifiers.
func NewTraitSet(traitIDs ...string) TraitSet {
	ts := make(TraitSet, len(traitIDs))
	for _, id := range traitIDs {
		ts[id] = true
	}
	return ts
}

// Has reports whether the trait identifier is a member of the set.
func (ts TraitSet) Has(traitID string) bool {
	return ts[traitID]
}

// Equal reports whether both sets contain exactly the same trait
// identifiers.
func (ts TraitSet) Equal(other TraitSet) bool {
	if len(ts) != len(other) {
		return false
	}
	for id := range ts {
		if !other[id] {
			return false
		}
	}
	return true
}

// IDs returns the member trait identifiers in sorted order.
func (ts TraitSet) IDs() []string {
	ids := make([]string, 0, len(ts))
	for id := range ts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TraitsData is a trait-keyed property bag: a set of traits, each
// holding named property values. The dispatch and composition layers
// treat it as an opaque value; only implementations and hosts inspect
// its contents.
type TraitsData struct {
	traits map[string]map[string]any
}

// NewTraitsData returns an empty TraitsData.
func NewTraitsData() *TraitsData {
	return &TraitsData{traits: make(map[string]map[string]any)}
}

// AddTrait marks the trait as present, with no properties. Adding an
// existing trait is a no-op.
func (d *TraitsData) AddTrait(traitID string) {
	if _, ok := d.traits[traitID]; !ok {
		d.traits[traitID] = make(map[string]any)
	}
}

// HasTrait reports whether the trait is present.
func (d *TraitsData) HasTrait(traitID string) bool {
	_, ok := d.traits[traitID]
	return ok
}

// SetProperty sets a property value under the given trait, adding the
// trait if absent.
func (d *TraitsData) SetProperty(traitID, key string, value any) {
	d.AddTrait(traitID)
	d.traits[traitID][key] = value
}

// Property returns the value of a property under the given trait, and
// whether it was set.
func (d *TraitsData) Property(traitID, key string) (any, bool) {
	props, ok := d.traits[traitID]
	if !ok {
		return nil, false
	}
	v, ok := props[key]
	return v, ok
}

// TraitSet returns the set of traits present.
func (d *TraitsData) TraitSet() TraitSet {
	ts := make(TraitSet, len(d.traits))
	for id := range d.traits {
		ts[id] = true
	}
	return ts
}

// Properties returns the property map for the given trait, or nil if
// the trait is absent. The returned map is a copy.
func (d *TraitsData) Properties(traitID string) map[string]any {
	props, ok := d.traits[traitID]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

// Copy returns a deep copy sharing no state with the receiver.
func (d *TraitsData) Copy() *TraitsData {
	out := NewTraitsData()
	for id, props := range d.traits {
		out.traits[id] = make(map[string]any, len(props))
		for k, v := range props {
			out.traits[id][k] = v
		}
	}
	return out
}

// Equal reports whether both hold the same traits with the same
// property values. Property values are compared with ==; slice or map
// valued properties compare unequal.
func (d *TraitsData) Equal(other *TraitsData) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.traits) != len(other.traits) {
		return false
	}
	for id, props := range d.traits {
		otherProps, ok := other.traits[id]
		if !ok || len(props) != len(otherProps) {
			return false
		}
		for k, v := range props {
			ov, ok := otherProps[k]
			if !ok || ov != v {
				return false
			}
		}
	}
	return true
}
