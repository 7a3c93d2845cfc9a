package storefront

import (
	"fmt"
	"strings"
)

// ValidationError is one path-qualified problem found in a document.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}

// ValidationResult accumulates every problem found in a single pass.
// Authoring-time strictness lives here; the renderer stays lenient.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type validator struct {
	components *ComponentRegistry
	actions    *ActionRegistry
	errors     []ValidationError
	seenIDs    map[string]string // id -> first path seen
}

func (v *validator) errorf(path, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// ValidateDocument statically checks a document tree against the
// component and action registries.
//
// Every node is checked: ID presence and uniqueness, registered type,
// binding path syntax, style safety, action refs, and children shape.
// LAYOUT documents must additionally contain exactly one Slot. The item
// and index binding roots are only legal inside a Repeater subtree.
//
// The tree is never mutated and validation never stops early - one pass
// reports every problem, path-qualified (root.children[2].bindings.src),
// so the save/publish flow can show the author a complete list.
func ValidateDocument(tree *StorefrontNode, kind DocumentKind, components *ComponentRegistry, actions *ActionRegistry) ValidationResult {
	v := &validator{
		components: components,
		actions:    actions,
		seenIDs:    make(map[string]string),
	}
	if tree == nil {
		v.errorf("root", "document has no tree")
		return ValidationResult{Valid: false, Errors: v.errors}
	}
	v.walk(tree, "root", false)

	if kind == KindLayout {
		switch n := CountNodesByType(tree, "Slot"); {
		case n == 0:
			v.errorf("root", "LAYOUT document must contain a Slot node")
		case n > 1:
			v.errorf("root", "LAYOUT document must contain exactly one Slot, found %d", n)
		}
	}

	return ValidationResult{Valid: len(v.errors) == 0, Errors: v.errors}
}

func (v *validator) walk(n *StorefrontNode, path string, inRepeater bool) {
	if n.ID == "" {
		v.errorf(path, "node has no id")
	} else if first, dup := v.seenIDs[n.ID]; dup {
		v.errorf(path, "duplicate node id %q (first seen at %s)", n.ID, first)
	} else {
		v.seenIDs[n.ID] = path
	}

	var def *ComponentDefinition
	if n.Type == "" {
		v.errorf(path, "node has no type")
	} else if v.components != nil {
		var ok bool
		def, ok = v.components.Get(n.Type)
		if !ok {
			v.errorf(path, "unknown component type %q", n.Type)
		}
	}

	v.checkBindings(n, path, inRepeater)
	v.checkStyles(n, path)
	v.checkActions(n, path, inRepeater)

	if def != nil && def.LeafOnly && len(n.Children) > 0 {
		v.errorf(path, "%s nodes cannot have children", n.Type)
	}

	childScope := inRepeater || n.Type == "Repeater"
	for i, child := range n.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if child == nil {
			v.errorf(childPath, "child is null")
			continue
		}
		v.walk(child, childPath, childScope)
	}
}

func (v *validator) checkBindings(n *StorefrontNode, path string, inRepeater bool) {
	for prop, bindPath := range n.Bindings {
		qualified := fmt.Sprintf("%s.bindings.%s", path, prop)
		segs, ok := ParseBindingPath(bindPath)
		if !ok {
			v.errorf(qualified, "invalid binding path %q", bindPath)
			continue
		}
		v.checkBindingRoot(segs, bindPath, qualified, inRepeater)
	}
}

// checkBindingRoot enforces root-name validity: a path must open with a
// fixed context root, or with item/index when (and only when) the node
// sits inside a Repeater subtree.
func (v *validator) checkBindingRoot(segs []PathSegment, bindPath, qualified string, inRepeater bool) {
	root := segs[0].Key
	switch {
	case root == ScopeItemKey || root == ScopeIndexKey:
		if !inRepeater {
			v.errorf(qualified, "binding %q uses %s outside a Repeater", bindPath, root)
		}
	case !IsContextRoot(root):
		v.errorf(qualified, "binding %q has unknown root %q", bindPath, root)
	}
}

func (v *validator) checkStyles(n *StorefrontNode, path string) {
	for key, block := range n.Styles {
		if !IsBreakpointKey(key) && !IsStateKey(key) {
			v.errorf(fmt.Sprintf("%s.styles.%s", path, key), "unknown breakpoint or state %q", key)
			continue
		}
		for prop := range block {
			if !IsSafeStyleProperty(prop) {
				v.errorf(fmt.Sprintf("%s.styles.%s.%s", path, key, prop), "css property %q is not allowed", prop)
			}
		}
	}
}

func (v *validator) checkActions(n *StorefrontNode, path string, inRepeater bool) {
	for slot, ref := range n.Actions {
		qualified := fmt.Sprintf("%s.actions.%s", path, slot)
		if strings.TrimSpace(ref.ActionID) == "" {
			v.errorf(qualified, "action has no actionId")
			continue
		}
		if v.actions != nil && !v.actions.Has(ref.ActionID) {
			v.errorf(qualified, "unknown action id %q", ref.ActionID)
		}
		for field, bindPath := range ref.PayloadBindings {
			fieldPath := fmt.Sprintf("%s.payloadBindings.%s", qualified, field)
			segs, ok := ParseBindingPath(bindPath)
			if !ok {
				v.errorf(fieldPath, "invalid binding path %q", bindPath)
				continue
			}
			v.checkBindingRoot(segs, bindPath, fieldPath, inRepeater)
		}
	}
}
