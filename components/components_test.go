package components

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	storefront "github.com/NTAravind/eshop-sub000"
)

func renderToString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return sb.String()
}

func input(props map[string]any) storefront.RenderInput {
	return storefront.RenderInput{Props: props}
}

func TestRegisterCoreSet(t *testing.T) {
	reg := storefront.NewComponentRegistry()
	Register(reg)

	want := []string{
		"Box", "Stack", "Spacer", "Divider",
		"Text", "Heading", "Image",
		"Button", "Link", "Form", "FormField",
		"ProductCard",
		"Slot", "Repeater", "Conditional",
	}
	for _, typ := range want {
		if !reg.Has(typ) {
			t.Errorf("core component %q not registered", typ)
		}
	}
	if got := len(reg.Types()); got != len(want) {
		t.Errorf("registered %d types, want %d", got, len(want))
	}

	// Calling Register again must not disturb the existing set.
	Register(reg)
	if got := len(reg.Types()); got != len(want) {
		t.Errorf("re-registration changed the set: %d types", got)
	}
}

func TestTextEscapesContent(t *testing.T) {
	def := textDefinition()
	got := renderToString(t, def.Render(input(map[string]any{
		"text": `<script>alert("x")</script>`,
	})))

	if strings.Contains(got, "<script>") {
		t.Fatalf("content rendered unescaped: %q", got)
	}
	if !strings.HasPrefix(got, "<p>") || !strings.HasSuffix(got, "</p>") {
		t.Errorf("rendered = %q, want a p element", got)
	}
}

func TestTextTag(t *testing.T) {
	def := textDefinition()

	tests := []struct {
		name string
		tag  any
		want string
	}{
		{"default p", nil, "<p>hi</p>"},
		{"span", "span", "<span>hi</span>"},
		{"unknown tag falls back to p", "div", "<p>hi</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := map[string]any{"text": "hi"}
			if tt.tag != nil {
				props["tag"] = tt.tag
			}
			if got := renderToString(t, def.Render(input(props))); got != tt.want {
				t.Errorf("rendered = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeadingLevelClamp(t *testing.T) {
	def := headingDefinition()

	tests := []struct {
		name  string
		level any
		want  string
	}{
		{"default", nil, "<h2>T</h2>"},
		{"h1", 1, "<h1>T</h1>"},
		{"h6", 6, "<h6>T</h6>"},
		{"json number", float64(3), "<h3>T</h3>"},
		{"zero clamps", 0, "<h2>T</h2>"},
		{"above range clamps", 9, "<h2>T</h2>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := map[string]any{"text": "T"}
			if tt.level != nil {
				props["level"] = tt.level
			}
			if got := renderToString(t, def.Render(input(props))); got != tt.want {
				t.Errorf("rendered = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageEscapesAttributes(t *testing.T) {
	def := imageDefinition()
	got := renderToString(t, def.Render(input(map[string]any{
		"src": `/x.jpg" onerror="alert(1)`,
		"alt": `a "quoted" alt`,
	})))

	if strings.Contains(got, `onerror="alert`) {
		t.Fatalf("attribute value rendered unescaped: %q", got)
	}
	if !strings.Contains(got, "&#34;") {
		t.Errorf("quotes not escaped: %q", got)
	}
	// img is a void tag.
	if strings.Contains(got, "</img>") {
		t.Errorf("void tag got a closing tag: %q", got)
	}
}

func TestStackStyleDefaults(t *testing.T) {
	def := stackDefinition()

	in := input(map[string]any{"direction": "row"})
	got := renderToString(t, def.Render(in))
	if !strings.Contains(got, "display:flex") || !strings.Contains(got, "flex-direction:row") {
		t.Errorf("flex defaults missing: %q", got)
	}

	// Authored styles win over structural defaults.
	in = storefront.RenderInput{
		Props:  map[string]any{"direction": "row"},
		Styles: map[string]any{"display": "grid"},
	}
	got = renderToString(t, def.Render(in))
	if !strings.Contains(got, "display:grid") {
		t.Errorf("authored display overridden: %q", got)
	}
	if strings.Contains(got, "display:flex") {
		t.Errorf("structural default leaked over authored style: %q", got)
	}
}

func TestSpacerAndDivider(t *testing.T) {
	spacer := renderToString(t, spacerDefinition().Render(input(map[string]any{"size": "24px"})))
	if spacer != `<div style="height:24px"></div>` {
		t.Errorf("spacer = %q", spacer)
	}

	divider := renderToString(t, dividerDefinition().Render(input(nil)))
	if divider != "<hr>" {
		t.Errorf("divider = %q", divider)
	}
}

func TestButtonRender(t *testing.T) {
	def := buttonDefinition()
	got := renderToString(t, def.Render(storefront.RenderInput{
		Props: map[string]any{"label": "Add <now>"},
		Attrs: templ.Attributes{"data-sf-node": "btn-1"},
	}))

	if !strings.Contains(got, `type="button"`) {
		t.Errorf("missing type attribute: %q", got)
	}
	if !strings.Contains(got, `data-sf-node="btn-1"`) {
		t.Errorf("renderer attrs dropped: %q", got)
	}
	if !strings.Contains(got, "Add &lt;now&gt;") {
		t.Errorf("label not escaped: %q", got)
	}
}

func TestLinkLabelOrChildren(t *testing.T) {
	def := linkDefinition()

	got := renderToString(t, def.Render(input(map[string]any{"href": "/sale", "label": "Sale"})))
	if got != `<a href="/sale">Sale</a>` {
		t.Errorf("rendered = %q", got)
	}

	// Without a label the children render inside the anchor.
	in := storefront.RenderInput{
		Props:    map[string]any{"href": "/sale"},
		Children: text("child"),
	}
	if got := renderToString(t, def.Render(in)); got != `<a href="/sale">child</a>` {
		t.Errorf("rendered = %q", got)
	}
}

func TestProductCardRender(t *testing.T) {
	def := productCardDefinition()
	got := renderToString(t, def.Render(input(map[string]any{
		"name":     "Canvas Tote",
		"price":    float64(2400),
		"imageUrl": "/tote.jpg",
		"currency": "$",
	})))

	if !strings.Contains(got, `src="/tote.jpg"`) || !strings.Contains(got, `alt="Canvas Tote"`) {
		t.Errorf("image missing: %q", got)
	}
	if !strings.Contains(got, `<span data-sf-part="name">Canvas Tote</span>`) {
		t.Errorf("name missing: %q", got)
	}
	if !strings.Contains(got, `<span data-sf-part="price">$2400</span>`) {
		t.Errorf("price missing: %q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"whole", 2400, "2400"},
		{"zero", 0, "0"},
		{"fractional", 19.5, "19.50"},
		{"cents", 12.99, "12.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPrice(tt.v); got != tt.want {
				t.Errorf("formatPrice(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormFieldRender(t *testing.T) {
	def := formFieldDefinition()

	got := renderToString(t, def.Render(input(map[string]any{
		"name":      "email",
		"label":     "Email",
		"inputType": "email",
	})))
	if !strings.HasPrefix(got, "<label>") {
		t.Errorf("labeled field should wrap in a label: %q", got)
	}
	if !strings.Contains(got, `name="email"`) || !strings.Contains(got, `type="email"`) {
		t.Errorf("input attributes missing: %q", got)
	}
	if strings.Contains(got, "</input>") {
		t.Errorf("void tag got a closing tag: %q", got)
	}

	// No label: plain wrapper div.
	got = renderToString(t, def.Render(input(map[string]any{"name": "qty"})))
	if !strings.HasPrefix(got, "<div>") {
		t.Errorf("unlabeled field = %q", got)
	}
}

func TestStructuralDefinitionsHaveNoRender(t *testing.T) {
	for _, def := range []*storefront.ComponentDefinition{
		slotDefinition(), repeaterDefinition(), conditionalDefinition(),
	} {
		if def.Render != nil {
			t.Errorf("%s should leave rendering to the tree walker", def.Type)
		}
	}
}
