package components

import (
	"github.com/a-h/templ"

	storefront "github.com/NTAravind/eshop-sub000"
)

// Button exposes the click action slot; its ActionRef arrives on the
// rendered element as a sealed data-sf-action-click envelope.
func buttonDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Button",
		Category:    "interactive",
		DisplayName: "Button",
		Props: map[string]storefront.PropSpec{
			"label": {Type: storefront.PropString, Default: "Button"},
		},
		ActionSlots: []string{"click"},
		Defaults: &storefront.StorefrontNode{
			Type:  "Button",
			Props: map[string]any{"label": "Button"},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			extra := templ.Attributes{"type": "button"}
			return element("button", in, extra, text(stringProp(in.Props, "label", "Button")))
		},
	}
}

// Link navigates without going through the action system; plain anchors
// stay plain anchors.
func linkDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Link",
		Category:    "interactive",
		DisplayName: "Link",
		Props: map[string]storefront.PropSpec{
			"href":  {Type: storefront.PropString, Required: true},
			"label": {Type: storefront.PropString, Default: ""},
		},
		Defaults: &storefront.StorefrontNode{
			Type:  "Link",
			Props: map[string]any{"href": "/", "label": "Link"},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			extra := templ.Attributes{"href": stringProp(in.Props, "href", "/")}
			content := in.Children
			if label := stringProp(in.Props, "label", ""); label != "" {
				content = text(label)
			}
			return element("a", in, extra, content)
		},
	}
}

// Form wraps children and exposes the submit action slot, typically bound
// to SUBMIT_FORM.
func formDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "Form",
		Category:    "interactive",
		DisplayName: "Form",
		Props: map[string]storefront.PropSpec{
			"formId": {Type: storefront.PropString, Required: true},
		},
		ActionSlots: []string{"submit"},
		Defaults: &storefront.StorefrontNode{
			Type:  "Form",
			Props: map[string]any{"formId": ""},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			extra := templ.Attributes{"data-sf-form": stringProp(in.Props, "formId", "")}
			return element("form", in, extra, in.Children)
		},
	}
}

// FormField is one labeled input inside a Form. Leaf-only.
func formFieldDefinition() *storefront.ComponentDefinition {
	return &storefront.ComponentDefinition{
		Type:        "FormField",
		Category:    "interactive",
		DisplayName: "Form Field",
		LeafOnly:    true,
		Props: map[string]storefront.PropSpec{
			"name":        {Type: storefront.PropString, Required: true},
			"label":       {Type: storefront.PropString, Default: ""},
			"placeholder": {Type: storefront.PropString, Default: ""},
			"inputType":   {Type: storefront.PropString, Default: "text", Enum: []string{"text", "email", "tel", "number"}},
		},
		Defaults: &storefront.StorefrontNode{
			Type:  "FormField",
			Props: map[string]any{"name": "", "label": "", "inputType": "text"},
		},
		Render: func(in storefront.RenderInput) templ.Component {
			name := stringProp(in.Props, "name", "")
			extra := templ.Attributes{
				"name":        name,
				"type":        stringProp(in.Props, "inputType", "text"),
				"placeholder": stringProp(in.Props, "placeholder", ""),
			}
			input := element("input", storefront.RenderInput{Attrs: templ.Attributes{}}, extra, nil)
			if label := stringProp(in.Props, "label", ""); label != "" {
				return element("label", in, nil, join(text(label), input))
			}
			return element("div", in, nil, input)
		},
	}
}
