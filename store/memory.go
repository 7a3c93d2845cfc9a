package store

import (
	"context"
	"sort"
	"sync"
	"time"

	storefront "github.com/NTAravind/eshop-sub000"
)

type docKey struct {
	storeID string
	kind    storefront.DocumentKind
	key     string
	status  storefront.DocumentStatus
}

// MemoryStore is an in-memory document store for tests and single-node
// development setups.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[docKey]*storefront.Document
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[docKey]*storefront.Document)}
}

// GetDocument returns the document at the full address.
func (s *MemoryStore) GetDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string, status storefront.DocumentStatus) (*storefront.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docKey{storeID, kind, key, status}]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// GetPublishedDocument returns the published document for the key.
func (s *MemoryStore) GetPublishedDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string) (*storefront.Document, error) {
	return s.GetDocument(ctx, storeID, kind, key, storefront.StatusPublished)
}

// SaveDocument writes the document as the current draft.
func (s *MemoryStore) SaveDocument(ctx context.Context, doc *storefront.Document) error {
	if doc == nil || doc.Tree == nil {
		return storefront.ErrNilTree
	}
	stored := *doc
	stored.Status = storefront.StatusDraft
	stored.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[docKey{doc.StoreID, doc.Kind, doc.Key, storefront.StatusDraft}] = &stored
	return nil
}

// PublishDocument copies the current draft to the published slot.
func (s *MemoryStore) PublishDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.docs[docKey{storeID, kind, key, storefront.StatusDraft}]
	if !ok {
		return ErrNotFound
	}
	published := *draft
	published.Status = storefront.StatusPublished
	published.UpdatedAt = time.Now().UTC()
	s.docs[docKey{storeID, kind, key, storefront.StatusPublished}] = &published
	return nil
}

// ListDocuments lists metadata for a store and kind, both statuses.
func (s *MemoryStore) ListDocuments(ctx context.Context, storeID string, kind storefront.DocumentKind) ([]DocumentMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []DocumentMeta
	for k := range s.docs {
		if k.storeID == storeID && k.kind == kind {
			out = append(out, DocumentMeta{StoreID: k.storeID, Kind: k.kind, Key: k.key, Status: k.status})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}
