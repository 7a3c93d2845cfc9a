package storefront

import (
	"encoding/json"
	"fmt"
	"time"
)

// DocumentKind distinguishes what a persisted document tree is for.
type DocumentKind string

const (
	// KindLayout documents frame every page and contain exactly one Slot.
	KindLayout DocumentKind = "LAYOUT"

	// KindPage documents are substituted into the layout's Slot.
	KindPage DocumentKind = "PAGE"

	// KindTemplate documents render product-detail pages. Keys follow the
	// PDP:<productSchemaID> convention with fallback to PDP:default.
	KindTemplate DocumentKind = "TEMPLATE"

	// KindPrefab documents are reusable fragments for the builder palette.
	KindPrefab DocumentKind = "PREFAB"
)

// DocumentStatus is the publication state of a stored document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusPublished DocumentStatus = "PUBLISHED"
)

// TemplateKeyPDP builds the template key for a product schema.
// An empty schema ID yields the default key.
func TemplateKeyPDP(productSchemaID string) string {
	if productSchemaID == "" {
		return "PDP:default"
	}
	return "PDP:" + productSchemaID
}

// ActionRef declares a user-triggerable behavior on a node's event slot.
//
// ActionID must name a registered action. Payload holds literal payload
// fields; PayloadBindings maps payload keys to binding paths resolved at
// dispatch time, with bound values overriding literals when they resolve
// to something other than undefined.
type ActionRef struct {
	ActionID        string            `json:"actionId" msgpack:"a"`
	Payload         map[string]any    `json:"payload,omitempty" msgpack:"p,omitempty"`
	PayloadBindings map[string]string `json:"payloadBindings,omitempty" msgpack:"b,omitempty"`
}

// StorefrontNode is one node of a document tree.
//
// IDs are unique within a tree. A node without children is a leaf; Slot
// and leaf-only component types (Spacer, Divider, Image) must not carry
// children. Nodes are treated as immutable once part of a tree - the
// mutation functions in tree.go return new trees rather than editing in
// place.
type StorefrontNode struct {
	ID       string               `json:"id"`
	Type     string               `json:"type"`
	Props    map[string]any       `json:"props,omitempty"`
	Styles   StyleObject          `json:"styles,omitempty"`
	Bindings map[string]string    `json:"bindings,omitempty"`
	Actions  map[string]ActionRef `json:"actions,omitempty"`
	Children []*StorefrontNode    `json:"children,omitempty"`
}

// Clone returns a copy of the node with copied maps and a shallow-copied
// child slice. Child nodes themselves are shared; tree mutations copy
// along the affected path only.
func (n *StorefrontNode) Clone() *StorefrontNode {
	if n == nil {
		return nil
	}
	out := &StorefrontNode{
		ID:   n.ID,
		Type: n.Type,
	}
	if n.Props != nil {
		out.Props = make(map[string]any, len(n.Props))
		for k, v := range n.Props {
			out.Props[k] = v
		}
	}
	if n.Styles != nil {
		out.Styles = n.Styles.Clone()
	}
	if n.Bindings != nil {
		out.Bindings = make(map[string]string, len(n.Bindings))
		for k, v := range n.Bindings {
			out.Bindings[k] = v
		}
	}
	if n.Actions != nil {
		out.Actions = make(map[string]ActionRef, len(n.Actions))
		for k, v := range n.Actions {
			out.Actions[k] = v
		}
	}
	if n.Children != nil {
		out.Children = make([]*StorefrontNode, len(n.Children))
		copy(out.Children, n.Children)
	}
	return out
}

// Document is a persisted node tree addressed by (StoreID, Kind, Key,
// Status). The runtime only ever consumes Tree; the rest is addressing.
type Document struct {
	StoreID   string          `json:"storeId"`
	Kind      DocumentKind    `json:"kind"`
	Key       string          `json:"key"`
	Status    DocumentStatus  `json:"status"`
	Tree      *StorefrontNode `json:"tree"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ParseTree decodes a JSON document tree.
func ParseTree(data []byte) (*StorefrontNode, error) {
	var n StorefrontNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("storefront: parse tree: %w", err)
	}
	return &n, nil
}

// EncodeTree encodes a document tree to JSON.
func EncodeTree(n *StorefrontNode) ([]byte, error) {
	if n == nil {
		return nil, ErrNilTree
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("storefront: encode tree: %w", err)
	}
	return data, nil
}
