package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	storefront "github.com/NTAravind/eshop-sub000"
	"github.com/NTAravind/eshop-sub000/store"
)

// storeLoader resolves request paths to published documents and builds
// the runtime context from demo data. A real deployment would hydrate
// the context roots from its own catalog and session services.
type storeLoader struct {
	docs    store.Store
	storeID string
}

func (l *storeLoader) Load(r *http.Request) (*storefront.PageView, error) {
	layout, err := l.docs.GetPublishedDocument(r.Context(), l.storeID, storefront.KindLayout, "default")
	if err != nil {
		return nil, err
	}
	page, err := l.docs.GetPublishedDocument(r.Context(), l.storeID, storefront.KindPage, pageKey(r.URL.Path))
	if err != nil {
		return nil, err
	}

	rctx := storefront.NewRuntimeContext(map[string]any{
		storefront.RootStore: map[string]any{
			"id":   l.storeID,
			"name": "Demo Store",
		},
		storefront.RootSettings: map[string]any{
			"currency": "USD",
		},
		storefront.RootCart: map[string]any{
			"items":    []any{},
			"subtotal": 0,
		},
		storefront.RootRoute: map[string]any{
			"path": r.URL.Path,
		},
		storefront.RootCollection: map[string]any{
			"name":     "Featured",
			"products": demoProducts(),
		},
	})
	return &storefront.PageView{
		Layout:  layout.Tree,
		Page:    page.Tree,
		Context: rctx,
	}, nil
}

func pageKey(path string) string {
	key := strings.Trim(path, "/")
	if key == "" {
		return "home"
	}
	return key
}

func demoProducts() []any {
	return []any{
		map[string]any{
			"id":    "p-1",
			"name":  "Canvas Tote",
			"price": 2400,
			"image": "/static/tote.jpg",
			"variants": []any{
				map[string]any{"id": "v-1", "name": "Natural"},
			},
		},
		map[string]any{
			"id":    "p-2",
			"name":  "Enamel Mug",
			"price": 1800,
			"image": "/static/mug.jpg",
			"variants": []any{
				map[string]any{"id": "v-2", "name": "Forest"},
			},
		},
	}
}

// registerDemoHandlers wires in-memory server handlers for the
// commerce actions. Cart state lives on the runtime context only, so
// each request starts from the context the loader built.
func registerDemoHandlers(actions *storefront.ActionRegistry, log zerolog.Logger) {
	actions.RegisterHandler(storefront.ActionAddToCart, func(ctx context.Context, payload map[string]any, rctx *storefront.RuntimeContext) storefront.DispatchResult {
		log.Info().Interface("payload", payload).Msg("add to cart")
		rctx.ReplaceCart(map[string]any{
			"items": []any{
				map[string]any{"variantId": payload["variantId"], "quantity": payload["quantity"]},
			},
		})
		return storefront.Succeed(map[string]any{"added": payload["variantId"]})
	})
	actions.RegisterHandler(storefront.ActionBuyNow, func(ctx context.Context, payload map[string]any, rctx *storefront.RuntimeContext) storefront.DispatchResult {
		log.Info().Interface("payload", payload).Msg("buy now")
		return storefront.Succeed(map[string]any{"variantId": payload["variantId"]})
	})
	actions.RegisterHandler(storefront.ActionApplyDiscount, func(ctx context.Context, payload map[string]any, rctx *storefront.RuntimeContext) storefront.DispatchResult {
		code, _ := payload["code"].(string)
		if strings.EqualFold(code, "WELCOME10") {
			return storefront.Succeed(map[string]any{"discount": 10})
		}
		return storefront.Fail("unknown discount code %q", code)
	})
	actions.RegisterHandler(storefront.ActionSubmitForm, func(ctx context.Context, payload map[string]any, rctx *storefront.RuntimeContext) storefront.DispatchResult {
		log.Info().Interface("fields", payload).Msg("form submitted")
		return storefront.Succeed(nil)
	})
}
