package storefront

// Context root keys. These are the only names a binding path may open
// with; the set is fixed by the runtime, not by documents.
const (
	RootStore           = "store"
	RootSettings        = "settings"
	RootUser            = "user"
	RootCart            = "cart"
	RootRoute           = "route"
	RootUIState         = "uiState"
	RootCollection      = "collection"
	RootFacets          = "facets"
	RootProduct         = "product"
	RootSelectedVariant = "selectedVariant"
	RootSimilarProducts = "similarProducts"
	RootOrders          = "orders"
)

// Repeater scope roots. Valid only while rendering inside a Repeater;
// outside one they resolve to undefined.
const (
	ScopeItemKey  = "item"
	ScopeIndexKey = "index"
)

var contextRootKeys = []string{
	RootStore, RootSettings, RootUser, RootCart, RootRoute, RootUIState,
	RootCollection, RootFacets, RootProduct, RootSelectedVariant,
	RootSimilarProducts, RootOrders,
}

// ContextRootKeys returns the fixed set of context root names.
func ContextRootKeys() []string {
	out := make([]string, len(contextRootKeys))
	copy(out, contextRootKeys)
	return out
}

// IsContextRoot reports whether key is one of the fixed context roots.
func IsContextRoot(key string) bool {
	for _, k := range contextRootKeys {
		if k == key {
			return true
		}
	}
	return false
}

// RepeaterScope is the {item, index} pair injected while rendering one
// iteration of a Repeater node.
type RepeaterScope struct {
	Item  any
	Index int
}

// RuntimeContext is the read-only data root for a rendering pass.
//
// It is constructed once per page view from loader-assembled plain data
// (maps and slices, as decoded from JSON). All roots are immutable
// snapshots for the pass except uiState and cart, which dispatched
// actions may replace. The repeater scope is internal: bindings reach it
// through the item/index roots, never by name.
type RuntimeContext struct {
	roots map[string]any
	scope *RepeaterScope
}

// NewRuntimeContext builds a context from loader-supplied roots. Keys
// outside the fixed root set are ignored; uiState is always present so
// client actions have somewhere to write.
func NewRuntimeContext(roots map[string]any) *RuntimeContext {
	rc := &RuntimeContext{roots: make(map[string]any, len(contextRootKeys))}
	for _, key := range contextRootKeys {
		if v, ok := roots[key]; ok {
			rc.roots[key] = v
		}
	}
	if _, ok := rc.roots[RootUIState]; !ok {
		rc.roots[RootUIState] = map[string]any{}
	}
	return rc
}

// Root returns the value for a fixed context root.
func (rc *RuntimeContext) Root(key string) (any, bool) {
	if !IsContextRoot(key) {
		return nil, false
	}
	v, ok := rc.roots[key]
	return v, ok
}

// Scope returns the active repeater scope, or nil outside a Repeater.
func (rc *RuntimeContext) Scope() *RepeaterScope {
	return rc.scope
}

// WithScope returns a context sharing this context's roots with the given
// repeater scope active. The receiver is unchanged; nesting Repeaters
// shadows the outer scope for the inner subtree.
func (rc *RuntimeContext) WithScope(item any, index int) *RuntimeContext {
	return &RuntimeContext{
		roots: rc.roots,
		scope: &RepeaterScope{Item: item, Index: index},
	}
}

// SetUIState writes one key of the uiState slice. uiState is one of the
// two mutable slices of the context; only dispatched actions and the
// page's own handlers may call this.
func (rc *RuntimeContext) SetUIState(key string, value any) {
	state, ok := rc.roots[RootUIState].(map[string]any)
	if !ok {
		state = map[string]any{}
		rc.roots[RootUIState] = state
	}
	state[key] = value
}

// UIState returns the current uiState map.
func (rc *RuntimeContext) UIState() map[string]any {
	state, _ := rc.roots[RootUIState].(map[string]any)
	return state
}

// ReplaceCart swaps the cart snapshot, typically after a cart-refresh
// side effect completes.
func (rc *RuntimeContext) ReplaceCart(cart any) {
	rc.roots[RootCart] = cart
}
