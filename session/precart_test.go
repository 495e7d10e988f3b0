package session

import (
	"errors"
	"testing"
)

func TestPreCart_EmptyReadsAsNil(t *testing.T) {
	precart := NewPreCart(NewMemoryStore())

	items, err := precart.Items()
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if items != nil {
		t.Errorf("Items on empty store = %v, want nil", items)
	}
}

func TestPreCart_AddAndRead(t *testing.T) {
	precart := NewPreCart(NewMemoryStore())

	err := precart.Add(PreCartItem{
		ItemType:  ItemTypeProduct,
		ProductID: "p-1",
		VariantID: "v-50ml",
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := precart.Items()
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].ProductID != "p-1" || items[0].Quantity != 2 {
		t.Errorf("stored item = %+v", items[0])
	}
}

func TestPreCart_AddFoldsSameLine(t *testing.T) {
	precart := NewPreCart(NewMemoryStore())

	line := PreCartItem{ItemType: ItemTypeProduct, ProductID: "p-1", VariantID: "v-50ml", Quantity: 1}
	if err := precart.Add(line); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := precart.Add(line); err != nil {
		t.Fatalf("Add (second) failed: %v", err)
	}

	// Different variant is its own line
	other := PreCartItem{ItemType: ItemTypeProduct, ProductID: "p-1", VariantID: "v-100ml", Quantity: 1}
	if err := precart.Add(other); err != nil {
		t.Fatalf("Add (other variant) failed: %v", err)
	}

	items, err := precart.Items()
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("folded quantity = %d, want 2", items[0].Quantity)
	}
}

func TestPreCart_AddFoldsSameCombo(t *testing.T) {
	precart := NewPreCart(NewMemoryStore())

	combo := PreCartItem{ItemType: ItemTypeCombo, ComboID: "c-1", Quantity: 1}
	if err := precart.Add(combo); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := precart.Add(combo); err != nil {
		t.Fatalf("Add (second) failed: %v", err)
	}

	items, err := precart.Items()
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("folded quantity = %d, want 2", items[0].Quantity)
	}
}

func TestPreCartItem_Validate(t *testing.T) {
	cases := []struct {
		name string
		item PreCartItem
		ok   bool
	}{
		{"valid product", PreCartItem{ItemType: ItemTypeProduct, ProductID: "p", Quantity: 1}, true},
		{"valid combo", PreCartItem{ItemType: ItemTypeCombo, ComboID: "c", Quantity: 1}, true},
		{"product without id", PreCartItem{ItemType: ItemTypeProduct, Quantity: 1}, false},
		{"combo without id", PreCartItem{ItemType: ItemTypeCombo, Quantity: 1}, false},
		{"unknown type", PreCartItem{ItemType: "bundle", Quantity: 1}, false},
		{"zero quantity", PreCartItem{ItemType: ItemTypeProduct, ProductID: "p", Quantity: 0}, false},
		{"negative quantity", PreCartItem{ItemType: ItemTypeProduct, ProductID: "p", Quantity: -1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidItem) {
				t.Errorf("Validate() = %v, want ErrInvalidItem", err)
			}
		})
	}
}

func TestPreCart_ClearAndReplaceEmpty(t *testing.T) {
	store := NewMemoryStore()
	precart := NewPreCart(store)

	if err := precart.Add(PreCartItem{ItemType: ItemTypeCombo, ComboID: "c-1", Quantity: 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := precart.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Get(PreCartKey); ok {
		t.Error("storage key should be removed after Clear")
	}

	// Replace with an empty list also clears the key
	if err := precart.Add(PreCartItem{ItemType: ItemTypeCombo, ComboID: "c-1", Quantity: 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := precart.Replace(nil); err != nil {
		t.Fatalf("Replace(nil) failed: %v", err)
	}
	if _, ok := store.Get(PreCartKey); ok {
		t.Error("storage key should be removed after Replace(nil)")
	}
}

func TestPreCart_CorruptState(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set(PreCartKey, []byte("{not json"))

	precart := NewPreCart(store)
	_, err := precart.Items()
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("Items on corrupt state = %v, want ErrCorruptState", err)
	}
}
