package components

import (
	"github.com/a-h/templ"

	storefront "github.com/NTAravind/eshop-sub000"
)

// Box is the generic block container.
func boxDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Box",
		Category:    "layout",
		DisplayName: "Box",
		Props:       map[string]storefront.PropSpec{},
		Defaults: &storefront.StorefrontNode{
			Type:   "Box",
			Styles: storefront.StyleObject{"base": {"padding": "16px"}},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			return element("div", in, nil, in.Children)
		},
	}
}

// Stack lays children out along one axis with flexbox.
func stackDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Stack",
		Category:    "layout",
		DisplayName: "Stack",
		Props: map[string]storefront.PropSpec{
			"direction": {Type: storefront.PropString, Default: "column", Enum: []string{"row", "column"}},
		},
		Defaults: &storefront.StorefrontNode{
			Type:   "Stack",
			Props:  map[string]any{"direction": "column"},
			Styles: storefront.StyleObject{"base": {"gap": "8px"}},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			in = withStyle(in, "display", "flex")
			in = withStyle(in, "flexDirection", stringProp(in.Props, "direction", "column"))
			return element("div", in, nil, in.Children)
		},
	}
}

// Spacer is fixed empty space. Leaf-only.
func spacerDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Spacer",
		Category:    "layout",
		DisplayName: "Spacer",
		LeafOnly:    true,
		Props: map[string]storefront.PropSpec{
			"size": {Type: storefront.PropString, Default: "16px"},
		},
		Defaults: &storefront.StorefrontNode{
			Type:  "Spacer",
			Props: map[string]any{"size": "16px"},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			in = withStyle(in, "height", stringProp(in.Props, "size", "16px"))
			return element("div", in, nil, nil)
		},
	}
}

// Divider is a horizontal rule. Leaf-only.
func dividerDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Divider",
		Category:    "layout",
		DisplayName: "Divider",
		LeafOnly:    true,
		Props:       map[string]storefront.PropSpec{},
		Defaults:    &storefront.StorefrontNode{Type: "Divider"},
		Render: func(in storefront.RenderInput) templ.Component {
			return element("hr", in, nil, nil)
		},
	}
}
