package storefront

import (
	"context"
	"strings"
	"testing"
)

type fakeRouter struct {
	pushed   []string
	replaced []string
}

func (r *fakeRouter) Push(to string)    { r.pushed = append(r.pushed, to) }
func (r *fakeRouter) Replace(to string) { r.replaced = append(r.replaced, to) }

func TestDispatchUnknownAction(t *testing.T) {
	d := NewDispatcher(NewActionRegistry())
	res := d.Dispatch(context.Background(), ActionRef{ActionID: "NOPE"}, NewRuntimeContext(nil))

	if res.Success {
		t.Fatal("unknown action should fail")
	}
	if !strings.Contains(res.Error, `unknown action "NOPE"`) {
		t.Errorf("error = %q", res.Error)
	}
}

func TestDispatchAddToCart(t *testing.T) {
	actions := NewActionRegistry()
	var handledPayload map[string]any
	actions.RegisterHandler(ActionAddToCart, func(ctx context.Context, payload map[string]any, rctx *RuntimeContext) DispatchResult {
		handledPayload = payload
		return Succeed(map[string]any{"cartSize": 1})
	})

	refreshes := 0
	d := NewDispatcher(actions, WithCartRefresh(func(ctx context.Context) { refreshes++ }))

	res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionAddToCart,
		Payload:  map[string]any{"variantId": "v1", "quantity": 2},
	}, NewRuntimeContext(nil))

	if !res.Success {
		t.Fatalf("dispatch failed: %s", res.Error)
	}
	if res.Data["cartSize"] != 1 {
		t.Errorf("Data = %v", res.Data)
	}
	if handledPayload["variantId"] != "v1" || handledPayload["quantity"] != 2 {
		t.Errorf("handler payload = %v", handledPayload)
	}
	if handledPayload["openCart"] != true {
		t.Errorf("openCart default not applied: %v", handledPayload["openCart"])
	}
	if refreshes != 1 {
		t.Errorf("cart refreshed %d times, want 1", refreshes)
	}
}

func TestDispatchAddToCartHandlerFailure(t *testing.T) {
	actions := NewActionRegistry()
	actions.RegisterHandler(ActionAddToCart, func(ctx context.Context, payload map[string]any, rctx *RuntimeContext) DispatchResult {
		return Fail("variant v1 is out of stock")
	})

	refreshes := 0
	d := NewDispatcher(actions, WithCartRefresh(func(ctx context.Context) { refreshes++ }))

	res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionAddToCart,
		Payload:  map[string]any{"variantId": "v1"},
	}, NewRuntimeContext(nil))

	if res.Success {
		t.Fatal("expected failure")
	}
	// Handler messages propagate unchanged.
	if res.Error != "variant v1 is out of stock" {
		t.Errorf("error = %q", res.Error)
	}
	if refreshes != 0 {
		t.Errorf("cart refreshed on failure: %d", refreshes)
	}
}

func TestDispatchBuyNowPushesCheckout(t *testing.T) {
	actions := NewActionRegistry()
	actions.RegisterHandler(ActionBuyNow, func(ctx context.Context, payload map[string]any, rctx *RuntimeContext) DispatchResult {
		return Succeed(nil)
	})

	router := &fakeRouter{}
	refreshes := 0
	d := NewDispatcher(actions,
		WithRouter(router),
		WithCartRefresh(func(ctx context.Context) { refreshes++ }),
		WithCheckoutPath("/express-checkout"),
	)

	res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionBuyNow,
		Payload:  map[string]any{"variantId": "v1"},
	}, NewRuntimeContext(nil))

	if !res.Success {
		t.Fatalf("dispatch failed: %s", res.Error)
	}
	if refreshes != 1 {
		t.Errorf("cart refreshed %d times, want 1", refreshes)
	}
	if len(router.pushed) != 1 || router.pushed[0] != "/express-checkout" {
		t.Errorf("pushed = %v, want [/express-checkout]", router.pushed)
	}
}

func TestDispatchNavigate(t *testing.T) {
	router := &fakeRouter{}
	d := NewDispatcher(NewActionRegistry(), WithRouter(router))
	rctx := NewRuntimeContext(nil)

	if res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionNavigate,
		Payload:  map[string]any{"to": "/products"},
	}, rctx); !res.Success {
		t.Fatalf("push dispatch failed: %s", res.Error)
	}
	if res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionNavigate,
		Payload:  map[string]any{"to": "/home", "replace": true},
	}, rctx); !res.Success {
		t.Fatalf("replace dispatch failed: %s", res.Error)
	}

	if len(router.pushed) != 1 || router.pushed[0] != "/products" {
		t.Errorf("pushed = %v", router.pushed)
	}
	if len(router.replaced) != 1 || router.replaced[0] != "/home" {
		t.Errorf("replaced = %v", router.replaced)
	}
}

func TestDispatchClientStateActions(t *testing.T) {
	d := NewDispatcher(NewActionRegistry())
	rctx := NewRuntimeContext(nil)
	ctx := context.Background()

	d.Dispatch(ctx, ActionRef{ActionID: ActionOpenCartSidebar}, rctx)
	d.Dispatch(ctx, ActionRef{ActionID: ActionSelectVariant, Payload: map[string]any{"variantId": "v9"}}, rctx)
	d.Dispatch(ctx, ActionRef{ActionID: ActionSetDeliveryMode, Payload: map[string]any{"mode": "pickup"}}, rctx)
	d.Dispatch(ctx, ActionRef{ActionID: ActionUpdateUIState, Payload: map[string]any{"key": "tab", "value": "reviews"}}, rctx)

	tests := []struct {
		key  string
		want any
	}{
		{"cartSidebarOpen", true},
		{"selectedVariantId", "v9"},
		{"deliveryMode", "pickup"},
		{"tab", "reviews"},
	}
	state := rctx.UIState()
	for _, tt := range tests {
		if got := state[tt.key]; got != tt.want {
			t.Errorf("uiState[%q] = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDispatchNilContext(t *testing.T) {
	d := NewDispatcher(NewActionRegistry())

	res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionOpenCartSidebar,
	}, nil)

	if res.Success {
		t.Fatal("dispatch without a context should fail")
	}
	if !strings.Contains(res.Error, "no runtime context") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestDispatchPayloadValidationFailure(t *testing.T) {
	d := NewDispatcher(NewActionRegistry(), WithRouter(&fakeRouter{}))

	res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionNavigate,
		Payload:  map[string]any{},
	}, NewRuntimeContext(nil))

	if res.Success {
		t.Fatal("missing required field should fail")
	}
	if !strings.Contains(res.Error, `missing required field "to"`) {
		t.Errorf("error = %q", res.Error)
	}
}

func TestDispatchServerActionWithoutHandler(t *testing.T) {
	d := NewDispatcher(NewActionRegistry())

	res := d.Dispatch(context.Background(), ActionRef{
		ActionID: ActionAddToCart,
		Payload:  map[string]any{"variantId": "v1"},
	}, NewRuntimeContext(nil))

	if res.Success {
		t.Fatal("expected failure without a handler")
	}
	if !strings.Contains(res.Error, "no handler registered") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestDispatchPayloadBindings(t *testing.T) {
	actions := NewActionRegistry()
	var got map[string]any
	actions.RegisterHandler(ActionAddToCart, func(ctx context.Context, payload map[string]any, rctx *RuntimeContext) DispatchResult {
		got = payload
		return Succeed(nil)
	})
	d := NewDispatcher(actions)

	rctx := NewRuntimeContext(map[string]any{
		RootSelectedVariant: map[string]any{"id": "v-22"},
	})
	res := d.Dispatch(context.Background(), ActionRef{
		ActionID:        ActionAddToCart,
		PayloadBindings: map[string]string{"variantId": "selectedVariant.id"},
	}, rctx)

	if !res.Success {
		t.Fatalf("dispatch failed: %s", res.Error)
	}
	if got["variantId"] != "v-22" {
		t.Errorf("bound variantId = %v, want v-22", got["variantId"])
	}
}
