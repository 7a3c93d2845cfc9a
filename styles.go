package storefront

import (
	"fmt"
	"sort"
	"strings"
)

// StyleObject maps a breakpoint key (base/sm/md/lg/xl) or pseudo-state
// key (hover/focus/active) to CSS property values for that key.
type StyleObject map[string]map[string]any

// Clone returns a deep copy of the style object.
func (s StyleObject) Clone() StyleObject {
	if s == nil {
		return nil
	}
	out := make(StyleObject, len(s))
	for key, block := range s {
		copied := make(map[string]any, len(block))
		for prop, v := range block {
			copied[prop] = v
		}
		out[key] = copied
	}
	return out
}

// Breakpoint keys in mobile-first cascade order.
var BreakpointOrder = []string{"base", "sm", "md", "lg", "xl"}

// Pseudo-state keys, resolved independently of the breakpoint cascade.
var StateKeys = []string{"hover", "focus", "active"}

// IsBreakpointKey reports whether key is a responsive breakpoint.
func IsBreakpointKey(key string) bool {
	for _, b := range BreakpointOrder {
		if b == key {
			return true
		}
	}
	return false
}

// IsStateKey reports whether key is a pseudo-state.
func IsStateKey(key string) bool {
	for _, s := range StateKeys {
		if s == key {
			return true
		}
	}
	return false
}

// safeStyleProperties is the fixed allowlist of CSS properties a document
// may set. Anything else is dropped at resolve time and reported by the
// validator. Property names use the camelCase form documents are authored
// in.
var safeStyleProperties = newPropertySet(
	// layout
	"display", "position", "top", "right", "bottom", "left",
	"width", "minWidth", "maxWidth", "height", "minHeight", "maxHeight",
	"margin", "marginTop", "marginRight", "marginBottom", "marginLeft",
	"padding", "paddingTop", "paddingRight", "paddingBottom", "paddingLeft",
	"overflow", "overflowX", "overflowY", "boxSizing",
	// flex & grid
	"flexDirection", "flexWrap", "flexGrow", "flexShrink", "flexBasis", "flex",
	"justifyContent", "alignItems", "alignSelf", "alignContent",
	"gap", "rowGap", "columnGap", "order",
	"gridTemplateColumns", "gridTemplateRows", "gridColumn", "gridRow",
	"gridAutoFlow", "gridAutoColumns", "gridAutoRows", "placeItems", "placeContent",
	// typography
	"fontFamily", "fontSize", "fontWeight", "fontStyle", "lineHeight",
	"letterSpacing", "textAlign", "textDecoration", "textTransform",
	"textOverflow", "whiteSpace", "wordBreak",
	// color
	"color", "backgroundColor", "opacity",
	// border
	"border", "borderTop", "borderRight", "borderBottom", "borderLeft",
	"borderWidth", "borderStyle", "borderColor", "borderRadius",
	// effects
	"boxShadow", "textShadow", "filter", "backdropFilter",
	// motion
	"transform", "transformOrigin", "transition", "transitionProperty",
	"transitionDuration", "transitionTimingFunction", "transitionDelay",
	// misc
	"visibility", "zIndex", "cursor", "pointerEvents",
	"objectFit", "objectPosition", "aspectRatio",
)

func newPropertySet(props ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(props))
	for _, p := range props {
		set[p] = struct{}{}
	}
	return set
}

// IsSafeStyleProperty reports whether a CSS property may appear in a
// document style block.
func IsSafeStyleProperty(prop string) bool {
	_, ok := safeStyleProperties[prop]
	return ok
}

// ResolveStyles cascades the style object down to one flat property set
// for the requested breakpoint.
//
// The cascade is mobile-first: base through the requested breakpoint, in
// order, later blocks overriding earlier ones. Properties outside the
// allowlist are dropped silently here; the validator reports them at
// save time. Unknown breakpoints resolve as "base".
func ResolveStyles(styles StyleObject, breakpoint string) map[string]any {
	out := map[string]any{}
	if len(styles) == 0 {
		return out
	}
	if !IsBreakpointKey(breakpoint) {
		breakpoint = "base"
	}
	for _, bp := range BreakpointOrder {
		if block, ok := styles[bp]; ok {
			for prop, v := range block {
				if IsSafeStyleProperty(prop) {
					out[prop] = v
				}
			}
		}
		if bp == breakpoint {
			break
		}
	}
	return out
}

// ResolveStateStyles resolves one pseudo-state block (hover/focus/active)
// through the allowlist. State styles never merge into the base cascade;
// the rendering layer applies them as separate state-triggered sets.
func ResolveStateStyles(styles StyleObject, state string) map[string]any {
	out := map[string]any{}
	if !IsStateKey(state) {
		return out
	}
	for prop, v := range styles[state] {
		if IsSafeStyleProperty(prop) {
			out[prop] = v
		}
	}
	return out
}

// InlineCSS renders a resolved property set as an inline style string
// with deterministic property order. camelCase property names become
// kebab-case.
func InlineCSS(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(kebabCase(k))
		sb.WriteByte(':')
		sb.WriteString(cssValue(props[k]))
	}
	return sb.String()
}

func kebabCase(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func cssValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case float64:
		// Bare numbers come from JSON; whole values print without decimals.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
