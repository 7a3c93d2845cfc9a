// Package storefront implements the document runtime behind the merchant
// storefront: a declarative UI composition system where pages are trees of
// typed component nodes, component props are bound to server-supplied data
// through restricted path expressions, and user interactions are declared
// as schema-validated actions rather than code.
//
// The runtime is built so that documents authored by non-developers can
// never execute anything. Binding paths are a closed micro-language with no
// computation capability, styles pass through a fixed CSS property
// allowlist, and every interaction routes through a registry of known
// action IDs with typed payloads.
//
// # Documents
//
// A document is a tree of StorefrontNode values persisted as JSON. Each
// node carries a type (resolved against a ComponentRegistry), literal
// props, optional responsive styles, optional bindings mapping prop names
// to context paths, and optional action refs on named event slots.
//
// Documents come in four kinds: LAYOUT (a frame containing exactly one
// Slot), PAGE (substituted into the layout's Slot at render time),
// TEMPLATE (product-detail templates keyed PDP:<schemaID>), and PREFAB
// (reusable fragments for the builder palette).
//
// # Bindings
//
// Binding paths follow root(.identifier|[index])* and select values out of
// a RuntimeContext. Resolution never fails: missing data, malformed paths,
// and forbidden keys all resolve to undefined, letting the node's literal
// prop value show through. Forbidden-key and forbidden-character checks
// run before parsing as a fast-reject security gate.
//
//	storefront.ResolveBinding("product.variants[0].price", rctx)
//
// Inside a Repeater, the item and index roots read from the active
// repeater scope instead of the context roots.
//
// # Editing
//
// The visual builder mutates documents exclusively through the pure tree
// operations (InsertNode, DeleteNode, MoveNode, UpdateNode). Every
// operation returns a new tree and leaves the input untouched; unaffected
// branches are shared structurally. ValidateDocument statically checks a
// tree before save or publish, accumulating every problem in one pass as
// path-qualified errors.
//
// # Actions
//
// Actions declare intent, not behavior. A node's ActionRef names an action
// ID whose payload schema lives in the ActionRegistry; the Dispatcher
// merges payload bindings over literals, validates the result, and routes
// client actions to local state mutations and server actions to registered
// handlers. Dispatch never panics - failures come back as DispatchResult
// values.
//
// Action refs rendered into HTML are msgpack-encoded and HMAC-signed (see
// lib/encoding), so the dispatch endpoint only accepts envelopes the
// server itself minted.
//
// # Rendering
//
// The Renderer walks a {layout, page} pair depth-first, resolving
// bindings, styles, and actions per node and delegating markup to the
// component's pure Render function. Output is a templ.Component, composed
// without reflection in the render path.
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit registries constructed at startup (no init() side effects)
//   - Explicit error values (validation, binding, and dispatch never panic)
//   - Explicit security (allowlists and signed envelopes, not sanitizers)
//
// Renderer output degrades rather than breaks: a bad binding falls back to
// the literal prop, an unsafe style property is dropped, an unknown
// component type renders nothing. Authoring time is where strictness
// lives - ValidateDocument reports everything before publish.
package storefront
