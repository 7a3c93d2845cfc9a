package storefront

import (
	"sort"
	"sync"

	"github.com/a-h/templ"
)

// PropType is the declared type of a component prop.
type PropType string

const (
	PropString PropType = "string"
	PropNumber PropType = "number"
	PropBool   PropType = "bool"
	PropObject PropType = "object"
	PropList   PropType = "list"
)

// PropSpec describes one prop in a component's prop schema.
type PropSpec struct {
	Type     PropType
	Required bool
	Default  any
	Enum     []string // non-empty restricts string values
}

// RenderInput is everything a component's render function receives: the
// node's resolved props (bindings already overlaid), the cascaded style
// set for the active breakpoint, pseudo-state style sets, attributes the
// renderer attached (action envelopes, node identity), and the already
// rendered children.
type RenderInput struct {
	Node        *StorefrontNode
	Props       map[string]any
	Styles      map[string]any
	StateStyles map[string]map[string]any
	Attrs       templ.Attributes
	Children    templ.Component
}

// RenderFunc produces a component's markup. It must be a pure function of
// its input - no data fetching, no side effects - so the renderer fully
// controls data flow into components.
type RenderFunc func(in RenderInput) templ.Component

// ComponentDefinition describes one registered component type: its prop
// schema, which event slots it exposes, structural constraints, builder
// defaults, and the render function.
type ComponentDefinition struct {
	Type        string
	Category    string
	DisplayName string
	Props       map[string]PropSpec
	ActionSlots []string
	LeafOnly    bool // node may not carry children (Slot, Spacer, Divider, Image)
	Defaults    *StorefrontNode
	Render      RenderFunc
}

// ComponentRegistry maps component type names to definitions.
//
// Construct one explicitly at startup and hand it to the renderer,
// validator, and editor - there is no package-level default. Registration
// is append-only and idempotent: registering an already known type is a
// no-op, which makes core registration safe to run more than once per
// process. Replace exists for deliberate overrides.
type ComponentRegistry struct {
	mu   sync.RWMutex
	defs map[string]*ComponentDefinition
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{defs: make(map[string]*ComponentDefinition)}
}

// Register adds a definition unless its type is already present.
// Definitions without a type are ignored.
func (r *ComponentRegistry) Register(def *ComponentDefinition) {
	if def == nil || def.Type == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Type]; exists {
		return
	}
	r.defs[def.Type] = def
}

// Replace stores a definition, overwriting any existing one for the type.
func (r *ComponentRegistry) Replace(def *ComponentDefinition) {
	if def == nil || def.Type == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Type] = def
}

// Get returns the definition for a component type.
func (r *ComponentRegistry) Get(componentType string) (*ComponentDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[componentType]
	return def, ok
}

// Has reports whether a component type is registered.
func (r *ComponentRegistry) Has(componentType string) bool {
	_, ok := r.Get(componentType)
	return ok
}

// List returns all definitions sorted by type name.
func (r *ComponentRegistry) List() []*ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ComponentDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Types returns all registered type names sorted.
func (r *ComponentRegistry) Types() []string {
	defs := r.List()
	out := make([]string, len(defs))
	for i, def := range defs {
		out[i] = def.Type
	}
	return out
}
