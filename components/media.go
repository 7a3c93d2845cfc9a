package components

import (
	"github.com/a-h/templ"

	storefront "github.com/NTAravind/eshop-sub000"
)

// Image renders an img element. Leaf-only; src is the usual binding
// target (product.images[0].url).
func imageDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Image",
		Category:    "media",
		DisplayName: "Image",
		LeafOnly:    true,
		Props: map[string]storefront.PropSpec{
			"src": {Type: storefront.PropString, Default: ""},
			"alt": {Type: storefront.PropString, Default: ""},
		},
		Defaults: &storefront.StorefrontNode{
			Type:   "Image",
			Props:  map[string]any{"src": "", "alt": ""},
			Styles: storefront.StyleObject{"base": {"maxWidth": "100%"}},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			extra := templ.Attributes{
				"src": stringProp(in.Props, "src", ""),
				"alt": stringProp(in.Props, "alt", ""),
			}
			return element("img", in, extra, nil)
		},
	}
}
