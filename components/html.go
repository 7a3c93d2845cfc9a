package components

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"

	storefront "github.com/NTAravind/eshop-sub000"
)

// voidTags render without a closing tag and ignore content.
var voidTags = map[string]bool{
	"img":   true,
	"hr":    true,
	"br":    true,
	"input": true,
}

// element writes one HTML element: resolved styles become an inline style
// attribute, renderer-owned attrs (node identity, action envelopes, state
// style sets) are emitted sorted for deterministic output, and all
// attribute values and text content are escaped.
func element(tag string, in storefront.RenderInput, extra templ.Attributes, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteByte('<')
		sb.WriteString(tag)

		if css := storefront.InlineCSS(in.Styles); css != "" {
			writeAttr(&sb, "style", css)
		}

		attrs := make(map[string]string, len(in.Attrs)+len(extra))
		for k, v := range in.Attrs {
			attrs[k] = attrString(v)
		}
		for k, v := range extra {
			attrs[k] = attrString(v)
		}
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeAttr(&sb, k, attrs[k])
		}
		sb.WriteByte('>')

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if voidTags[tag] {
			return nil
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteByte('"')
}

func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// join renders components in sequence.
func join(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, part := range parts {
			if part == nil {
				continue
			}
			if err := part.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// text renders escaped text content.
func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html.EscapeString(s))
		return err
	})
}

// stringProp reads a string prop with a fallback.
func stringProp(props map[string]any, key, fallback string) string {
	if v, ok := props[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// numberProp reads a numeric prop with a fallback. JSON numbers arrive as
// float64; literals authored in Go tests may be int.
func numberProp(props map[string]any, key string, fallback float64) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

// withStyle returns a copy of the input with one style property defaulted
// when the document did not set it. Components use this for structural
// CSS (a Stack is flex) without overriding authored styles.
func withStyle(in storefront.RenderInput, prop string, value any) storefront.RenderInput {
	if _, ok := in.Styles[prop]; ok {
		return in
	}
	styles := make(map[string]any, len(in.Styles)+1)
	for k, v := range in.Styles {
		styles[k] = v
	}
	styles[prop] = value
	in.Styles = styles
	return in
}
