// Package store persists storefront documents keyed by
// (storeID, kind, key, status). The runtime core only ever consumes the
// tree; this package owns addressing, draft/published lifecycle, and the
// PDP template fallback.
package store

import (
	"context"
	"errors"

	storefront "github.com/NTAravind/eshop-sub000"
)

// ErrNotFound is returned when no document matches the address.
var ErrNotFound = errors.New("store: document not found")

// DocumentMeta identifies a stored document without its tree.
type DocumentMeta struct {
	StoreID string                    `json:"storeId"`
	Kind    storefront.DocumentKind   `json:"kind"`
	Key     string                    `json:"key"`
	Status  storefront.DocumentStatus `json:"status"`
}

// Store is the document persistence collaborator.
//
// SaveDocument always writes the DRAFT row; PublishDocument copies the
// current draft to PUBLISHED. Publish-time validation is the caller's
// responsibility - the store does not validate trees.
type Store interface {
	GetDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string, status storefront.DocumentStatus) (*storefront.Document, error)
	GetPublishedDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string) (*storefront.Document, error)
	SaveDocument(ctx context.Context, doc *storefront.Document) error
	PublishDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string) error
	ListDocuments(ctx context.Context, storeID string, kind storefront.DocumentKind) ([]DocumentMeta, error)
}

// GetPublishedTemplate fetches the product-detail template for a product
// schema, falling back from PDP:<schemaID> to PDP:default.
func GetPublishedTemplate(ctx context.Context, s Store, storeID, productSchemaID string) (*storefront.Document, error) {
	doc, err := s.GetPublishedDocument(ctx, storeID, storefront.KindTemplate, storefront.TemplateKeyPDP(productSchemaID))
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.GetPublishedDocument(ctx, storeID, storefront.KindTemplate, storefront.TemplateKeyPDP(""))
}
