package main

import (
	"context"
	"time"

	storefront "github.com/NTAravind/eshop-sub000"
	"github.com/NTAravind/eshop-sub000/store"
)

// seedDemoDocuments writes and publishes a minimal layout and home page
// so the in-memory configuration serves something out of the box.
func seedDemoDocuments(ctx context.Context, docs store.Store, storeID string) error {
	layout := &storefront.StorefrontNode{
		ID:   "layout-root",
		Type: "Box",
		Styles: storefront.StyleObject{
			"base": {"maxWidth": "960px", "margin": "0 auto", "padding": "16px"},
		},
		Children: []*storefront.StorefrontNode{
			{
				ID:       "layout-header",
				Type:     "Heading",
				Props:    map[string]any{"level": 1},
				Bindings: map[string]string{"text": "store.name"},
			},
			{ID: "layout-slot", Type: "Slot"},
			{
				ID:    "layout-footer",
				Type:  "Text",
				Props: map[string]any{"text": "Powered by storefrontd", "tag": "span"},
				Styles: storefront.StyleObject{
					"base": {"color": "#888", "fontSize": "12px"},
				},
			},
		},
	}

	home := &storefront.StorefrontNode{
		ID:    "home-root",
		Type:  "Stack",
		Props: map[string]any{"direction": "column"},
		Styles: storefront.StyleObject{
			"base": {"gap": "24px"},
		},
		Children: []*storefront.StorefrontNode{
			{
				ID:       "home-collection-title",
				Type:     "Heading",
				Props:    map[string]any{"level": 2},
				Bindings: map[string]string{"text": "collection.name"},
			},
			{
				ID:       "home-grid",
				Type:     "Repeater",
				Bindings: map[string]string{"items": "collection.products"},
				Children: []*storefront.StorefrontNode{
					{
						ID:   "home-card",
						Type: "ProductCard",
						Bindings: map[string]string{
							"name":     "item.name",
							"price":    "item.price",
							"imageUrl": "item.image",
						},
					},
					{
						ID:    "home-add",
						Type:  "Button",
						Props: map[string]any{"label": "Add to cart"},
						Actions: map[string]storefront.ActionRef{
							"click": {
								ActionID:        storefront.ActionAddToCart,
								Payload:         map[string]any{"quantity": 1},
								PayloadBindings: map[string]string{"variantId": "item.variants[0].id"},
							},
						},
					},
				},
			},
			{
				ID:       "home-empty",
				Type:     "Conditional",
				Bindings: map[string]string{"when": "uiState.cartSidebarOpen"},
				Children: []*storefront.StorefrontNode{
					{
						ID:    "home-cart-note",
						Type:  "Text",
						Props: map[string]any{"text": "Cart sidebar is open."},
					},
				},
			},
		},
	}

	now := time.Now()
	for _, doc := range []*storefront.Document{
		{StoreID: storeID, Kind: storefront.KindLayout, Key: "default", Status: storefront.StatusDraft, Tree: layout, UpdatedAt: now},
		{StoreID: storeID, Kind: storefront.KindPage, Key: "home", Status: storefront.StatusDraft, Tree: home, UpdatedAt: now},
	} {
		if err := docs.SaveDocument(ctx, doc); err != nil {
			return err
		}
		if err := docs.PublishDocument(ctx, doc.StoreID, doc.Kind, doc.Key); err != nil {
			return err
		}
	}
	return nil
}
