package components

import (
	storefront "github.com/NTAravind/eshop-sub000"
)

// Structural types are rendered by the Renderer itself, not by a render
// function: Slot performs page substitution, Repeater injects the
// {item, index} scope, Conditional gates its children. They are still
// registered so the validator accepts them and the builder palette can
// offer them.

func slotDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Slot",
		Category:    "structural",
		DisplayName: "Page Slot",
		LeafOnly:    true,
		Props:       map[string]storefront.PropSpec{},
		Defaults:    &storefront.StorefrontNode{Type: "Slot"},
	}
}

func repeaterDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Repeater",
		Category:    "structural",
		DisplayName: "Repeater",
		Props: map[string]storefront.PropSpec{
			"items": {Type: storefront.PropList},
		},
		Defaults: &storefront.StorefrontNode{Type: "Repeater"},
	}
}

func conditionalDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Conditional",
		Category:    "structural",
		DisplayName: "Conditional",
		Props: map[string]storefront.PropSpec{
			"when": {Type: storefront.PropBool},
		},
		Defaults: &storefront.StorefrontNode{Type: "Conditional"},
	}
}
