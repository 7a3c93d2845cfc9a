package storefront

import (
	"strconv"
	"strings"
)

// Binding paths are a closed micro-language: root(.identifier|[index])*.
// They select values out of the runtime context and can express no
// computation. The forbidden-key and forbidden-character checks below run
// before parsing as a fast-reject gate; this is a hard security boundary
// and must be byte-identical on the validation (write) and resolution
// (read) paths.

// forbiddenKeySubstrings reject any path that could name prototype-chain
// internals in the authoring tool's JavaScript origin. Checked
// case-insensitively against the whole path.
var forbiddenKeySubstrings = []string{
	"__proto__",
	"constructor",
	"prototype",
	"__definegetter__",
	"__definesetter__",
	"__lookupgetter__",
	"__lookupsetter__",
}

// forbiddenPathChars reject anything that smells like an expression.
const forbiddenPathChars = "()?:+-*/=!&|<>"

// PathSegment is one step of a parsed binding path: either a key lookup
// or an integer index.
type PathSegment struct {
	Key     string
	Index   int
	IsIndex bool
}

// ValidateBindingPath reports whether path is syntactically valid and
// passes the security gate. It is the exact predicate the resolver uses:
// a path rejected here resolves to undefined.
func ValidateBindingPath(path string) bool {
	_, ok := ParseBindingPath(path)
	return ok
}

// ParseBindingPath tokenizes a binding path into segments. Returns false
// for empty, malformed, or forbidden paths.
func ParseBindingPath(path string) ([]PathSegment, bool) {
	if path == "" {
		return nil, false
	}
	if strings.ContainsAny(path, forbiddenPathChars) {
		return nil, false
	}
	lower := strings.ToLower(path)
	for _, bad := range forbiddenKeySubstrings {
		if strings.Contains(lower, bad) {
			return nil, false
		}
	}

	var segs []PathSegment
	i := 0
	expectIdent := true // a path must open with an identifier
	for i < len(path) {
		switch c := path[i]; {
		case c == '.':
			// '.' must be followed by an identifier and cannot lead.
			if len(segs) == 0 {
				return nil, false
			}
			i++
			key, n := scanIdentifier(path[i:])
			if n == 0 {
				return nil, false
			}
			segs = append(segs, PathSegment{Key: key})
			i += n
		case c == '[':
			if len(segs) == 0 {
				return nil, false
			}
			end := strings.IndexByte(path[i:], ']')
			if end <= 1 {
				return nil, false
			}
			idx, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, false
			}
			segs = append(segs, PathSegment{Index: idx, IsIndex: true})
			i += end + 1
		case expectIdent:
			key, n := scanIdentifier(path[i:])
			if n == 0 {
				return nil, false
			}
			segs = append(segs, PathSegment{Key: key})
			i += n
		default:
			return nil, false
		}
		expectIdent = false
	}
	if len(segs) == 0 {
		return nil, false
	}
	return segs, true
}

func scanIdentifier(s string) (string, int) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	if i == 0 {
		return "", 0
	}
	return s[:i], i
}

// ResolveBinding evaluates a binding path against the runtime context.
//
// It never fails: missing roots, missing intermediate data, malformed
// paths, and forbidden paths all resolve to nil (undefined). The walk
// never invokes behavior - it only reads explicit data out of maps and
// slices.
func ResolveBinding(path string, rctx *RuntimeContext) any {
	if rctx == nil {
		return nil
	}
	segs, ok := ParseBindingPath(path)
	if !ok {
		return nil
	}

	root := segs[0]
	if root.IsIndex {
		return nil
	}
	var current any
	switch root.Key {
	case ScopeItemKey, ScopeIndexKey:
		scope := rctx.Scope()
		if scope == nil {
			return nil
		}
		if root.Key == ScopeItemKey {
			current = scope.Item
		} else {
			current = scope.Index
		}
	default:
		v, ok := rctx.Root(root.Key)
		if !ok {
			return nil
		}
		current = v
	}
	if current == nil {
		return nil
	}

	for _, seg := range segs[1:] {
		current = step(current, seg)
		if current == nil {
			return nil
		}
	}
	return current
}

// step performs one segment lookup. Any shape mismatch yields nil.
func step(v any, seg PathSegment) any {
	switch val := v.(type) {
	case map[string]any:
		if seg.IsIndex {
			// Allow bracketed numeric keys on maps, matching plain object
			// index semantics.
			return val[strconv.Itoa(seg.Index)]
		}
		return val[seg.Key]
	case []any:
		if seg.IsIndex {
			if seg.Index >= 0 && seg.Index < len(val) {
				return val[seg.Index]
			}
			return nil
		}
		// The only property arrays expose is their length.
		if seg.Key == "length" {
			return len(val)
		}
		return nil
	default:
		// Scalars have no members.
		return nil
	}
}

// ResolveBindings overlays bound values onto literal props.
//
// For every prop with a mapped path, the resolved value replaces the
// literal only when resolution is defined - literal defaults act as
// fallback when bound data is missing. The input props map is not
// mutated.
func ResolveBindings(props map[string]any, bindings map[string]string, rctx *RuntimeContext) map[string]any {
	if len(bindings) == 0 && props != nil {
		return props
	}
	out := make(map[string]any, len(props)+len(bindings))
	for k, v := range props {
		out[k] = v
	}
	for prop, path := range bindings {
		if v := ResolveBinding(path, rctx); v != nil {
			out[prop] = v
		}
	}
	return out
}
