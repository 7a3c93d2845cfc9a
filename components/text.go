package components

import (
	"fmt"

	"github.com/a-h/templ"

	storefront "github.com/NTAravind/eshop-sub000"
)

// Text renders escaped body copy. The text prop is the usual binding
// target (product.name, item.title, ...), with the literal as fallback.
func textDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Text",
		Category:    "content",
		DisplayName: "Text",
		LeafOnly:    true,
		Props: map[string]storefront.PropSpec{
			"text": {Type: storefront.PropString, Default: ""},
			"tag":  {Type: storefront.PropString, Default: "p", Enum: []string{"p", "span"}},
		},
		Defaults: &storefront.StorefrontNode{
			Type:  "Text",
			Props: map[string]any{"text": "Text"},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			tag := stringProp(in.Props, "tag", "p")
			if tag != "span" {
				tag = "p"
			}
			return element(tag, in, nil, text(stringProp(in.Props, "text", "")))
		},
	}
}

// Heading renders an h1-h6 element.
func headingDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Heading",
		Category:    "content",
		DisplayName: "Heading",
		LeafOnly:    true,
		Props: map[string]storefront.PropSpec{
			"text":  {Type: storefront.PropString, Default: ""},
			"level": {Type: storefront.PropNumber, Default: 2},
		},
		Defaults: &storefront.StorefrontNode{
			Type:  "Heading",
			Props: map[string]any{"text": "Heading", "level": 2},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			level := int(numberProp(in.Props, "level", 2))
			if level < 1 || level > 6 {
				level = 2
			}
			return element(fmt.Sprintf("h%d", level), in, nil, text(stringProp(in.Props, "text", "")))
		},
	}
}
