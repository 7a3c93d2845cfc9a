package storefront

import (
	"fmt"

	"github.com/google/uuid"
)

// Tree mutation operations. All of them are pure: they return a new tree
// and never touch the input. Nodes along the mutated path are cloned;
// untouched branches are shared between the old and new trees.
//
// Error policy is uniform: a missing target or parent is
// ErrNodeNotFound from every mutator, deleting the root is ErrRootDelete,
// and moving a node under its own subtree is ErrInvalidMove. Nothing here
// panics on untrusted input.

// FindNodeByID returns the first node with the given ID in depth-first
// order, or nil.
func FindNodeByID(root *StorefrontNode, id string) *StorefrontNode {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindNodeByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// FindNodeByType returns the first node of the given component type in
// depth-first order, or nil.
func FindNodeByType(root *StorefrontNode, componentType string) *StorefrontNode {
	if root == nil {
		return nil
	}
	if root.Type == componentType {
		return root
	}
	for _, child := range root.Children {
		if found := FindNodeByType(child, componentType); found != nil {
			return found
		}
	}
	return nil
}

// CountNodesByType returns how many nodes of the given type the tree
// contains. The validator uses this for the LAYOUT single-Slot rule.
func CountNodesByType(root *StorefrontNode, componentType string) int {
	if root == nil {
		return 0
	}
	count := 0
	if root.Type == componentType {
		count++
	}
	for _, child := range root.Children {
		count += CountNodesByType(child, componentType)
	}
	return count
}

// Walk visits every node in depth-first order until fn returns false.
func Walk(root *StorefrontNode, fn func(n *StorefrontNode) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children {
		Walk(child, fn)
	}
}

// UpdateNode returns a tree identical to root except the node with the
// given ID is replaced by updater's return value. The updater receives a
// clone and may mutate it freely; the original tree is never touched.
func UpdateNode(root *StorefrontNode, id string, updater func(n *StorefrontNode) *StorefrontNode) (*StorefrontNode, error) {
	if root == nil {
		return nil, ErrNilTree
	}
	out, found := updateNode(root, id, updater)
	if !found {
		return nil, fmt.Errorf("update %q: %w", id, ErrNodeNotFound)
	}
	return out, nil
}

func updateNode(n *StorefrontNode, id string, updater func(*StorefrontNode) *StorefrontNode) (*StorefrontNode, bool) {
	if n.ID == id {
		return updater(n.Clone()), true
	}
	for i, child := range n.Children {
		if replaced, found := updateNode(child, id, updater); found {
			out := n.Clone()
			out.Children[i] = replaced
			return out, true
		}
	}
	return n, false
}

// InsertNode returns a tree with node added to parentID's children at the
// given index. A negative or out-of-range index appends. When node.ID is
// empty a fresh UUID is assigned; the inserted node (with its final ID)
// is returned alongside the new tree.
func InsertNode(root *StorefrontNode, parentID string, node *StorefrontNode, index int) (*StorefrontNode, *StorefrontNode, error) {
	if root == nil {
		return nil, nil, ErrNilTree
	}
	if node == nil {
		return nil, nil, fmt.Errorf("insert into %q: nil node", parentID)
	}
	inserted := node.Clone()
	if inserted.ID == "" {
		inserted.ID = uuid.NewString()
	}
	out, err := UpdateNode(root, parentID, func(parent *StorefrontNode) *StorefrontNode {
		if index < 0 || index > len(parent.Children) {
			parent.Children = append(parent.Children, inserted)
			return parent
		}
		children := make([]*StorefrontNode, 0, len(parent.Children)+1)
		children = append(children, parent.Children[:index]...)
		children = append(children, inserted)
		children = append(children, parent.Children[index:]...)
		parent.Children = children
		return parent
	})
	if err != nil {
		return nil, nil, fmt.Errorf("insert into %q: %w", parentID, ErrNodeNotFound)
	}
	return out, inserted, nil
}

// DeleteNode returns a tree with the identified node removed from its
// parent's children. Deleting the root is a usage error.
func DeleteNode(root *StorefrontNode, id string) (*StorefrontNode, error) {
	if root == nil {
		return nil, ErrNilTree
	}
	if root.ID == id {
		return nil, ErrRootDelete
	}
	out, found := deleteNode(root, id)
	if !found {
		return nil, fmt.Errorf("delete %q: %w", id, ErrNodeNotFound)
	}
	return out, nil
}

func deleteNode(n *StorefrontNode, id string) (*StorefrontNode, bool) {
	for i, child := range n.Children {
		if child.ID == id {
			out := n.Clone()
			out.Children = append(out.Children[:i], out.Children[i+1:]...)
			if len(out.Children) == 0 {
				out.Children = nil
			}
			return out, true
		}
		if replaced, found := deleteNode(child, id); found {
			out := n.Clone()
			out.Children[i] = replaced
			return out, true
		}
	}
	return n, false
}

// MoveNode relocates the identified node (with its whole subtree) under a
// new parent, composed as locate, delete, insert. The subtree keeps its
// identity: node IDs are preserved. Moving a node into itself or one of
// its descendants is rejected.
func MoveNode(root *StorefrontNode, id, newParentID string, index int) (*StorefrontNode, error) {
	if root == nil {
		return nil, ErrNilTree
	}
	node := FindNodeByID(root, id)
	if node == nil {
		return nil, fmt.Errorf("move %q: %w", id, ErrNodeNotFound)
	}
	if FindNodeByID(node, newParentID) != nil {
		return nil, fmt.Errorf("move %q under %q: %w", id, newParentID, ErrInvalidMove)
	}
	pruned, err := DeleteNode(root, id)
	if err != nil {
		return nil, err
	}
	out, _, err := InsertNode(pruned, newParentID, node, index)
	if err != nil {
		return nil, fmt.Errorf("move %q: new parent %q: %w", id, newParentID, ErrNodeNotFound)
	}
	return out, nil
}

// Patch is one tree mutation in an editor save batch.
type Patch struct {
	Op       string            `json:"op"` // insert, delete, move, update
	NodeID   string            `json:"nodeId,omitempty"`
	ParentID string            `json:"parentId,omitempty"`
	Index    int               `json:"index"`
	Node     *StorefrontNode   `json:"node,omitempty"`
	Props    map[string]any    `json:"props,omitempty"`
	Styles   StyleObject       `json:"styles,omitempty"`
	Bindings map[string]string `json:"bindings,omitempty"`
}

// ApplyPatch applies a batch of mutations transactionally: either every
// patch applies and the new tree is returned, or the first failure aborts
// the batch and the original tree stands.
func ApplyPatch(root *StorefrontNode, patches []Patch) (*StorefrontNode, error) {
	current := root
	for i, p := range patches {
		var err error
		switch p.Op {
		case "insert":
			current, _, err = InsertNode(current, p.ParentID, p.Node, p.Index)
		case "delete":
			current, err = DeleteNode(current, p.NodeID)
		case "move":
			current, err = MoveNode(current, p.NodeID, p.ParentID, p.Index)
		case "update":
			current, err = UpdateNode(current, p.NodeID, func(n *StorefrontNode) *StorefrontNode {
				if p.Props != nil {
					n.Props = p.Props
				}
				if p.Styles != nil {
					n.Styles = p.Styles
				}
				if p.Bindings != nil {
					n.Bindings = p.Bindings
				}
				return n
			})
		default:
			err = fmt.Errorf("unknown op %q", p.Op)
		}
		if err != nil {
			return nil, fmt.Errorf("patch[%d]: %w", i, err)
		}
	}
	return current, nil
}
