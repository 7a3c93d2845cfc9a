// Package components provides the core component set for the storefront
// document runtime: layout primitives, content, media, interactive
// elements, commerce tiles, and the structural types the renderer owns.
//
// Components here follow the runtime's purity contract: each Render is a
// function of its RenderInput alone, with all data flowing in through
// resolved props. Registration is explicit and idempotent - call Register
// once at startup with the registry you hand to the renderer.
package components

import (
	storefront "github.com/NTAravind/eshop-sub000"
)

// Register adds the core component set to a registry. Safe to call more
// than once per process; already registered types are left untouched.
func Register(reg *storefront.ComponentRegistry) {
	for _, def := range []*storefront.ComponentDefinition{
		boxDefinition(),
		stackDefinition(),
		spacerDefinition(),
		dividerDefinition(),
		textDefinition(),
		headingDefinition(),
		imageDefinition(),
		buttonDefinition(),
		linkDefinition(),
		formDefinition(),
		formFieldDefinition(),
		productCardDefinition(),
		slotDefinition(),
		repeaterDefinition(),
		conditionalDefinition(),
	} {
		reg.Register(def)
	}
}
