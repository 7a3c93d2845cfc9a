package components

import (
	"strconv"

	"github.com/a-h/templ"

	storefront "github.com/NTAravind/eshop-sub000"
)

// ProductCard is the collection-grid tile: image, name, price, and a
// click slot usually bound to NAVIGATE with item bindings inside a
// Repeater over collection.products.
func productCardDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "ProductCard",
		Category:    "commerce",
		DisplayName: "Product Card",
		Props: map[string]storefront.PropSpec{
			"name":     {Type: storefront.PropString, Default: ""},
			"price":    {Type: storefront.PropNumber, Default: 0},
			"imageUrl": {Type: storefront.PropString, Default: ""},
			"currency": {Type: storefront.PropString, Default: "$"},
		},
		ActionSlots: []string{"click"},
		Defaults: &storefront.StorefrontNode{
			Type:   "ProductCard",
			Props:  map[string]any{"name": "", "price": 0, "currency": "$"},
			Styles: storefront.StyleObject{"base": {"display": "flex", "flexDirection": "column", "gap": "4px"}},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			name := stringProp(in.Props, "name", "")
			price := numberProp(in.Props, "price", 0)
			currency := stringProp(in.Props, "currency", "$")

			img := element("img", storefront.RenderInput{Attrs: templ.Attributes{}}, templ.Attributes{
				"src": stringProp(in.Props, "imageUrl", ""),
				"alt": name,
			}, nil)
			title := element("span", storefront.RenderInput{Attrs: templ.Attributes{"data-sf-part": "name"}}, nil, text(name))
			amount := element("span", storefront.RenderInput{Attrs: templ.Attributes{"data-sf-part": "price"}}, nil,
				text(currency+formatPrice(price)))

			return element("div", in, nil, join(img, title, amount))
		},
	}
}

func formatPrice(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
