package storefront

import (
	"reflect"
	"testing"
)

func TestValidateBindingPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"simple root", "product", true},
		{"dotted path", "product.price.amount", true},
		{"indexed path", "collection.products[0].name", true},
		{"scope root", "item.variants[2].id", true},
		{"empty", "", false},
		{"leading dot", ".product", false},
		{"trailing dot", "product.", false},
		{"double dot", "product..name", false},
		{"bare index", "[0]", false},
		{"negative index", "items[-1]", false},
		{"unclosed bracket", "items[0", false},
		{"proto pollution", "a.__proto__.b", false},
		{"constructor", "x.constructor.y", false},
		{"prototype uppercase", "x.PROTOTYPE", false},
		{"define getter", "a.__defineGetter__", false},
		{"expression chars", "a+b", false},
		{"ternary chars", "a?b:c", false},
		{"call parens", "alert(1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateBindingPath(tt.path); got != tt.want {
				t.Errorf("ValidateBindingPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseBindingPath(t *testing.T) {
	segs, ok := ParseBindingPath("collection.products[3].name")
	if !ok {
		t.Fatal("ParseBindingPath returned ok = false")
	}
	want := []PathSegment{
		{Key: "collection"},
		{Key: "products"},
		{Index: 3, IsIndex: true},
		{Key: "name"},
	}
	if !reflect.DeepEqual(segs, want) {
		t.Errorf("segments = %+v, want %+v", segs, want)
	}
}

func testContext() *RuntimeContext {
	return NewRuntimeContext(map[string]any{
		RootStore: map[string]any{"name": "Acme"},
		RootProduct: map[string]any{
			"name":  "Tote",
			"price": map[string]any{"amount": 2400, "currency": "USD"},
			"tags":  []any{"new", "canvas"},
		},
		RootCart: map[string]any{"items": []any{}},
	})
}

func TestResolveBinding(t *testing.T) {
	rctx := testContext()

	tests := []struct {
		name string
		path string
		want any
	}{
		{"root field", "store.name", "Acme"},
		{"nested field", "product.price.amount", 2400},
		{"array element", "product.tags[1]", "canvas"},
		{"array length", "product.tags.length", 2},
		{"empty array length", "cart.items.length", 0},
		{"unknown root", "warehouse.name", nil},
		{"missing key", "product.sku", nil},
		{"index out of range", "product.tags[9]", nil},
		{"index into map", "product.price[0]", nil},
		{"key into scalar", "product.name.first", nil},
		{"invalid path", "product..name", nil},
		{"scope outside repeater", "item.name", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBinding(tt.path, rctx); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveBinding(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveBindingScope(t *testing.T) {
	rctx := testContext()
	scoped := rctx.WithScope(map[string]any{"name": "Mug", "price": 1800}, 1)

	if got := ResolveBinding("item.name", scoped); got != "Mug" {
		t.Errorf("item.name = %v, want Mug", got)
	}
	if got := ResolveBinding("index", scoped); got != 1 {
		t.Errorf("index = %v, want 1", got)
	}
	// Fixed roots stay visible inside the scope.
	if got := ResolveBinding("store.name", scoped); got != "Acme" {
		t.Errorf("store.name = %v, want Acme", got)
	}
	// The outer context is unaffected.
	if got := ResolveBinding("item.name", rctx); got != nil {
		t.Errorf("item.name outside scope = %v, want nil", got)
	}
}

func TestResolveBindings(t *testing.T) {
	rctx := testContext()
	props := map[string]any{"text": "fallback", "level": 2}
	bindings := map[string]string{
		"text":  "store.name",
		"badge": "store.missing",
	}

	got := ResolveBindings(props, bindings, rctx)

	if got["text"] != "Acme" {
		t.Errorf("bound prop = %v, want Acme", got["text"])
	}
	if got["level"] != 2 {
		t.Errorf("literal prop = %v, want 2", got["level"])
	}
	// Undefined bindings fall back to the literal prop (absent here).
	if v, ok := got["badge"]; ok {
		t.Errorf("undefined binding produced %v, want no key", v)
	}
	// Input props must not be mutated.
	if props["text"] != "fallback" {
		t.Errorf("input props mutated: text = %v", props["text"])
	}
}
