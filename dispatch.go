package storefront

import (
	"context"

	"github.com/rs/zerolog"
)

// Router abstracts client-side navigation for the NAVIGATE action.
type Router interface {
	Push(to string)
	Replace(to string)
}

// Dispatcher routes declarative actions: it merges and validates the
// payload, then either mutates local UI state (client actions) or runs
// the registered server handler (server actions).
//
// Each dispatch is independent - no ordering is guaranteed across
// concurrent dispatches, there is no built-in retry, and at most one
// server round trip happens per server action. Callers that need
// exactly-once behavior must serialize their own dispatches.
type Dispatcher struct {
	actions      *ActionRegistry
	router       Router
	cartRefresh  func(ctx context.Context)
	checkoutPath string
	log          zerolog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithRouter supplies the navigation target for NAVIGATE and the BUY_NOW
// checkout redirect.
func WithRouter(r Router) DispatcherOption {
	return func(d *Dispatcher) { d.router = r }
}

// WithCartRefresh registers the side effect run after a successful
// ADD_TO_CART or BUY_NOW.
func WithCartRefresh(fn func(ctx context.Context)) DispatcherOption {
	return func(d *Dispatcher) { d.cartRefresh = fn }
}

// WithCheckoutPath overrides the path BUY_NOW navigates to (default
// "/checkout").
func WithCheckoutPath(path string) DispatcherOption {
	return func(d *Dispatcher) { d.checkoutPath = path }
}

// WithDispatchLogger attaches a structured logger.
func WithDispatchLogger(log zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = log }
}

// NewDispatcher creates a dispatcher over the given action registry.
func NewDispatcher(actions *ActionRegistry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		actions:      actions,
		checkoutPath: "/checkout",
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch resolves, validates, and routes one action. It never panics:
// schema violations, unknown actions, and handler failures all come back
// as failed results.
func (d *Dispatcher) Dispatch(ctx context.Context, ref ActionRef, rctx *RuntimeContext) DispatchResult {
	if rctx == nil {
		return Fail("action %q: no runtime context", ref.ActionID)
	}
	spec, ok := d.actions.Spec(ref.ActionID)
	if !ok {
		return Fail("unknown action %q", ref.ActionID)
	}

	merged := ResolvePayload(ref, rctx)
	payload, errMsg := spec.ValidatePayload(merged)
	if errMsg != "" {
		d.log.Warn().Str("action", ref.ActionID).Str("error", errMsg).Msg("payload rejected")
		return DispatchResult{Error: errMsg}
	}

	switch spec.Kind {
	case ActionClient:
		return d.dispatchClient(spec.ID, payload, rctx)
	case ActionServer:
		return d.dispatchServer(ctx, spec.ID, payload, rctx)
	default:
		return Fail("action %q has no dispatch kind", spec.ID)
	}
}

// dispatchClient applies a client-only action to local state. These
// resolve synchronously and never touch the server.
func (d *Dispatcher) dispatchClient(id string, payload map[string]any, rctx *RuntimeContext) DispatchResult {
	switch id {
	case ActionNavigate:
		to, _ := payload["to"].(string)
		if d.router == nil {
			return Fail("%s: no router configured", id)
		}
		if replace, _ := payload["replace"].(bool); replace {
			d.router.Replace(to)
		} else {
			d.router.Push(to)
		}
		return Succeed(map[string]any{"to": to})

	case ActionUpdateUIState:
		key, _ := payload["key"].(string)
		rctx.SetUIState(key, payload["value"])
		return Succeed(nil)

	case ActionOpenCartSidebar:
		open, _ := payload["open"].(bool)
		rctx.SetUIState("cartSidebarOpen", open)
		return Succeed(nil)

	case ActionSelectVariant:
		variantID, _ := payload["variantId"].(string)
		rctx.SetUIState("selectedVariantId", variantID)
		return Succeed(map[string]any{"variantId": variantID})

	case ActionSetDeliveryMode:
		mode, _ := payload["mode"].(string)
		rctx.SetUIState("deliveryMode", mode)
		return Succeed(map[string]any{"mode": mode})

	default:
		// A custom client action with no built-in behavior still records
		// its payload in uiState under the action id.
		rctx.SetUIState(id, payload)
		return Succeed(nil)
	}
}

// dispatchServer runs the registered handler for a server action and
// applies post-success side effects (cart refresh, checkout redirect).
// Handler error messages propagate unchanged.
func (d *Dispatcher) dispatchServer(ctx context.Context, id string, payload map[string]any, rctx *RuntimeContext) DispatchResult {
	handler, ok := d.actions.Handler(id)
	if !ok {
		return Fail("no handler registered for %q", id)
	}

	result := handler(ctx, payload, rctx)
	if !result.Success {
		d.log.Warn().Str("action", id).Str("error", result.Error).Msg("server action failed")
		return result
	}

	switch id {
	case ActionAddToCart, ActionBuyNow:
		if d.cartRefresh != nil {
			d.cartRefresh(ctx)
		}
		if id == ActionBuyNow && d.router != nil {
			d.router.Push(d.checkoutPath)
		}
	}
	return result
}
