package storefront

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Core action IDs. Each is a fixed public contract between a document's
// declared action and its handler.
const (
	ActionAddToCart       = "ADD_TO_CART"
	ActionBuyNow          = "BUY_NOW"
	ActionSelectVariant   = "SELECT_VARIANT"
	ActionSetDeliveryMode = "SET_DELIVERY_MODE"
	ActionOpenCartSidebar = "OPEN_CART_SIDEBAR"
	ActionNavigate        = "NAVIGATE"
	ActionUpdateUIState   = "UPDATE_UI_STATE"
	ActionApplyDiscount   = "APPLY_DISCOUNT"
	ActionSubmitForm      = "SUBMIT_FORM"
)

// ActionKind routes a dispatched action: client actions mutate local UI
// state synchronously and never touch the server; server actions delegate
// to a registered handler in one round trip.
type ActionKind string

const (
	ActionClient ActionKind = "client"
	ActionServer ActionKind = "server"
)

// FieldType is the declared type of an action payload field.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
	FieldBool   FieldType = "bool"
	FieldObject FieldType = "object"
	FieldAny    FieldType = "any"
)

// FieldSpec describes one payload field: its type, whether the merged
// payload must contain it, the default applied when absent, and whether
// documents may supply it via payloadBindings instead of a literal.
type FieldSpec struct {
	Type     FieldType
	Required bool
	Default  any
	Bindable bool
}

// ActionSpec is the payload schema and routing kind for one action ID.
type ActionSpec struct {
	ID     string
	Kind   ActionKind
	Fields map[string]FieldSpec
}

// DispatchResult is the uniform outcome of a dispatch. Dispatch never
// panics and never returns a Go error - schema violations and handler
// failures both land here, with Error carrying the handler's message
// unchanged.
type DispatchResult struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Success result helpers, mirroring the shape handlers return.

// Succeed builds a successful result with optional data.
func Succeed(data map[string]any) DispatchResult {
	return DispatchResult{Success: true, Data: data}
}

// Fail builds a failed result with the given message.
func Fail(format string, args ...any) DispatchResult {
	return DispatchResult{Error: fmt.Sprintf(format, args...)}
}

// ServerHandler executes a server action. Payload has already been merged
// with bindings, defaulted, and validated against the action's schema.
// Handlers report failure through the result, not by panicking.
type ServerHandler func(ctx context.Context, payload map[string]any, rctx *RuntimeContext) DispatchResult

// ActionRegistry maps action IDs to payload schemas and server handlers.
//
// NewActionRegistry pre-populates the core action set; handler
// registration is separate so transport wiring (which handlers exist on
// this process) stays independent of schema knowledge (which every
// validator needs).
type ActionRegistry struct {
	mu       sync.RWMutex
	specs    map[string]*ActionSpec
	handlers map[string]ServerHandler
}

// NewActionRegistry creates a registry holding the core action schemas.
func NewActionRegistry() *ActionRegistry {
	r := &ActionRegistry{
		specs:    make(map[string]*ActionSpec),
		handlers: make(map[string]ServerHandler),
	}
	for _, spec := range coreActionSpecs() {
		r.specs[spec.ID] = spec
	}
	return r
}

func coreActionSpecs() []*ActionSpec {
	return []*ActionSpec{
		{
			ID:   ActionAddToCart,
			Kind: ActionServer,
			Fields: map[string]FieldSpec{
				"variantId": {Type: FieldString, Bindable: true},
				"quantity":  {Type: FieldNumber, Default: 1},
				"openCart":  {Type: FieldBool, Default: true},
			},
		},
		{
			ID:   ActionBuyNow,
			Kind: ActionServer,
			Fields: map[string]FieldSpec{
				"variantId": {Type: FieldString, Bindable: true},
				"quantity":  {Type: FieldNumber, Default: 1},
			},
		},
		{
			ID:   ActionApplyDiscount,
			Kind: ActionServer,
			Fields: map[string]FieldSpec{
				"code": {Type: FieldString, Required: true, Bindable: true},
			},
		},
		{
			ID:   ActionSubmitForm,
			Kind: ActionServer,
			Fields: map[string]FieldSpec{
				"formId": {Type: FieldString, Required: true},
				"fields": {Type: FieldObject, Bindable: true},
			},
		},
		{
			ID:   ActionNavigate,
			Kind: ActionClient,
			Fields: map[string]FieldSpec{
				"to":      {Type: FieldString, Required: true, Bindable: true},
				"replace": {Type: FieldBool, Default: false},
			},
		},
		{
			ID:   ActionUpdateUIState,
			Kind: ActionClient,
			Fields: map[string]FieldSpec{
				"key":   {Type: FieldString, Required: true},
				"value": {Type: FieldAny, Bindable: true},
			},
		},
		{
			ID:   ActionOpenCartSidebar,
			Kind: ActionClient,
			Fields: map[string]FieldSpec{
				"open": {Type: FieldBool, Default: true},
			},
		},
		{
			ID:   ActionSelectVariant,
			Kind: ActionClient,
			Fields: map[string]FieldSpec{
				"variantId": {Type: FieldString, Required: true, Bindable: true},
			},
		},
		{
			ID:   ActionSetDeliveryMode,
			Kind: ActionClient,
			Fields: map[string]FieldSpec{
				"mode": {Type: FieldString, Required: true},
			},
		},
	}
}

// RegisterAction adds a custom action schema. Idempotent per ID, matching
// component registration semantics.
func (r *ActionRegistry) RegisterAction(spec *ActionSpec) {
	if spec == nil || spec.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[spec.ID]; exists {
		return
	}
	r.specs[spec.ID] = spec
}

// RegisterHandler attaches the server-side handler for an action ID.
// Last registration wins; the handler is looked up at dispatch time.
func (r *ActionRegistry) RegisterHandler(actionID string, handler ServerHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[actionID] = handler
}

// Spec returns the schema for an action ID.
func (r *ActionRegistry) Spec(actionID string) (*ActionSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[actionID]
	return spec, ok
}

// Has reports whether an action ID is known.
func (r *ActionRegistry) Has(actionID string) bool {
	_, ok := r.Spec(actionID)
	return ok
}

// Handler returns the registered server handler for an action ID.
func (r *ActionRegistry) Handler(actionID string) (ServerHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[actionID]
	return h, ok
}

// IDs returns all known action IDs sorted.
func (r *ActionRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.specs))
	for id := range r.specs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ResolvePayload merges an action ref's payload bindings over its literal
// payload. Bound values win only when they resolve to something defined;
// the ref itself is not mutated.
func ResolvePayload(ref ActionRef, rctx *RuntimeContext) map[string]any {
	merged := make(map[string]any, len(ref.Payload)+len(ref.PayloadBindings))
	for k, v := range ref.Payload {
		merged[k] = v
	}
	for key, path := range ref.PayloadBindings {
		if v := ResolveBinding(path, rctx); v != nil {
			merged[key] = v
		}
	}
	return merged
}

// ValidatePayload checks a merged payload against the action's schema,
// applies field defaults, and returns the final payload. The error is a
// message string (empty when valid) because payload errors are data, not
// exceptions - dispatch forwards them inside DispatchResult.
func (s *ActionSpec) ValidatePayload(payload map[string]any) (map[string]any, string) {
	out := make(map[string]any, len(s.Fields))
	for name, field := range s.Fields {
		v, present := payload[name]
		if !present || v == nil {
			if field.Default != nil {
				out[name] = field.Default
				continue
			}
			if field.Required {
				return nil, fmt.Sprintf("%s: missing required field %q", s.ID, name)
			}
			continue
		}
		coerced, ok := coerceField(v, field.Type)
		if !ok {
			return nil, fmt.Sprintf("%s: field %q: expected %s", s.ID, name, field.Type)
		}
		out[name] = coerced
	}
	for name := range payload {
		if _, known := s.Fields[name]; !known {
			return nil, fmt.Sprintf("%s: unknown field %q", s.ID, name)
		}
	}
	return out, ""
}

func coerceField(v any, t FieldType) (any, bool) {
	switch t {
	case FieldString:
		s, ok := v.(string)
		return s, ok
	case FieldNumber:
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return n, true
		case int64:
			return n, true
		default:
			return nil, false
		}
	case FieldBool:
		b, ok := v.(bool)
		return b, ok
	case FieldObject:
		m, ok := v.(map[string]any)
		return m, ok
	case FieldAny:
		return v, true
	default:
		return nil, false
	}
}
