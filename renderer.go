package storefront

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/NTAravind/eshop-sub000/lib/encoding"
)

// ActionEnvelope is what an action slot renders into HTML: the node that
// declared the action plus its ActionRef, msgpack-encoded and sealed by
// lib/encoding so the dispatch endpoint only accepts server-minted
// actions. Payload bindings stay unresolved here - they are evaluated at
// dispatch time against the request's own context.
type ActionEnvelope struct {
	NodeID string    `msgpack:"n"`
	Slot   string    `msgpack:"s"`
	Ref    ActionRef `msgpack:"r"`
}

// Renderer walks a document tree and produces HTML.
//
// The walk is a synchronous depth-first pass: bindings, styles, and
// actions are resolved per node and the component's pure Render function
// produces markup. Rendering is lenient: unknown types render nothing,
// undefined bindings fall back to literal props, and unsafe styles are
// dropped. The validator has already had its say at publish time.
type Renderer struct {
	components *ComponentRegistry
	encoder    *encoding.Encoder
	breakpoint string
	log        zerolog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEncoder enables signed action envelopes on rendered action slots.
// Without one, action slots render no envelope attributes.
func WithEncoder(enc *encoding.Encoder) RendererOption {
	return func(r *Renderer) { r.encoder = enc }
}

// WithBreakpoint sets the breakpoint styles cascade to (default "base").
func WithBreakpoint(bp string) RendererOption {
	return func(r *Renderer) { r.breakpoint = bp }
}

// WithLogger attaches a structured logger for render diagnostics.
func WithLogger(log zerolog.Logger) RendererOption {
	return func(r *Renderer) { r.log = log }
}

// NewRenderer creates a renderer over the given component registry.
func NewRenderer(components *ComponentRegistry, opts ...RendererOption) *Renderer {
	r := &Renderer{
		components: components,
		breakpoint: "base",
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// renderPass carries per-request state through one tree walk.
type renderPass struct {
	rctx *RuntimeContext
	slot *StorefrontNode // page root substituted at the layout's Slot
}

// Render composes a page document inside an optional layout document.
//
// With a layout, the page tree is substituted at the layout's Slot node;
// a layout without a Slot renders with nothing inserted (publish-time
// validation catches this earlier). Without a layout, the page renders
// directly.
func (r *Renderer) Render(layout, page *StorefrontNode, rctx *RuntimeContext) templ.Component {
	if layout == nil {
		return r.renderNode(page, &renderPass{rctx: rctx})
	}
	return r.renderNode(layout, &renderPass{rctx: rctx, slot: page})
}

// RenderNode renders a single subtree without layout composition. The
// editor preview uses this for isolated fragments.
func (r *Renderer) RenderNode(node *StorefrontNode, rctx *RuntimeContext) templ.Component {
	return r.renderNode(node, &renderPass{rctx: rctx})
}

func (r *Renderer) renderNode(n *StorefrontNode, pass *renderPass) templ.Component {
	if n == nil {
		return empty()
	}

	// Structural node types are the renderer's own.
	switch n.Type {
	case "Slot":
		if pass.slot == nil {
			return empty()
		}
		page := pass.slot
		return r.renderNode(page, &renderPass{rctx: pass.rctx})
	case "Repeater":
		return r.renderRepeater(n, pass)
	case "Conditional":
		return r.renderConditional(n, pass)
	}

	def, ok := r.components.Get(n.Type)
	if !ok || def.Render == nil {
		r.log.Debug().Str("node", n.ID).Str("type", n.Type).Msg("skipping unregistered component type")
		return empty()
	}

	props := ResolveBindings(n.Props, n.Bindings, pass.rctx)
	styles := ResolveStyles(n.Styles, r.breakpoint)

	stateStyles := map[string]map[string]any{}
	for _, state := range StateKeys {
		if set := ResolveStateStyles(n.Styles, state); len(set) > 0 {
			stateStyles[state] = set
		}
	}

	return def.Render(RenderInput{
		Node:        n,
		Props:       props,
		Styles:      styles,
		StateStyles: stateStyles,
		Attrs:       r.nodeAttrs(n, stateStyles),
		Children:    r.renderChildren(n.Children, pass),
	})
}

// nodeAttrs builds the attributes the renderer owns: node identity,
// sealed action envelopes per event slot, and pseudo-state style sets as
// data attributes the client runtime applies on hover/focus/active.
func (r *Renderer) nodeAttrs(n *StorefrontNode, stateStyles map[string]map[string]any) templ.Attributes {
	attrs := templ.Attributes{"data-sf-node": n.ID}

	for state, set := range stateStyles {
		attrs["data-sf-style-"+state] = InlineCSS(set)
	}

	if r.encoder == nil {
		return attrs
	}
	for slot, ref := range n.Actions {
		envelope := ActionEnvelope{NodeID: n.ID, Slot: slot, Ref: ref}
		encoded, err := r.encoder.Encode(envelope, false)
		if err != nil {
			r.log.Warn().Err(err).Str("node", n.ID).Str("slot", slot).Msg("action envelope encoding failed")
			continue
		}
		attrs["data-sf-action-"+slot] = encoded
	}
	return attrs
}

// renderRepeater iterates the bound items slice, rendering the node's
// children once per element with an {item, index} scope active.
func (r *Renderer) renderRepeater(n *StorefrontNode, pass *renderPass) templ.Component {
	var items []any
	if path, ok := n.Bindings["items"]; ok {
		items, _ = ResolveBinding(path, pass.rctx).([]any)
	} else {
		items, _ = n.Props["items"].([]any)
	}
	if len(items) == 0 {
		return empty()
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for i, item := range items {
			scoped := &renderPass{rctx: pass.rctx.WithScope(item, i), slot: pass.slot}
			for _, child := range n.Children {
				if err := r.renderNode(child, scoped).Render(ctx, w); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// renderConditional renders children only when the node's condition is
// truthy. The condition comes from the "when" binding or literal prop.
func (r *Renderer) renderConditional(n *StorefrontNode, pass *renderPass) templ.Component {
	var cond any
	if path, ok := n.Bindings["when"]; ok {
		cond = ResolveBinding(path, pass.rctx)
	} else {
		cond = n.Props["when"]
	}
	if !Truthy(cond) {
		return empty()
	}
	return r.renderChildren(n.Children, pass)
}

func (r *Renderer) renderChildren(children []*StorefrontNode, pass *renderPass) templ.Component {
	if len(children) == 0 {
		return empty()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if err := r.renderNode(child, pass).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func empty() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return nil
	})
}

// Truthy mirrors the authoring tool's notion of truthiness for the
// Conditional component: nil, false, zero, empty string, and empty
// collections are false; everything else is true.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
