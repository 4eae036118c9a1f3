package store

import "testing"

func TestSelection_ToggleRoundTrip(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("1")
	if !sel.Has("1") || sel.Count() != 1 {
		t.Errorf("expected {1} after first toggle, got %v", sel.IDs())
	}

	sel.Toggle("1")
	if sel.Count() != 0 {
		t.Errorf("toggling the same id twice should return to empty, got %v", sel.IDs())
	}
}

func TestSelection_ToggleAll(t *testing.T) {
	page := []string{"a", "b", "c"}
	sel := NewSelection()

	sel.ToggleAll(page)
	if sel.Count() != 3 {
		t.Fatalf("select all should select exactly the 3 page ids, got %v", sel.IDs())
	}
	for _, id := range page {
		if !sel.Has(id) {
			t.Errorf("missing id %q", id)
		}
	}

	sel.ToggleAll(page)
	if sel.Count() != 0 {
		t.Errorf("select all when already all-selected should clear, got %v", sel.IDs())
	}
}

func TestSelection_ToggleAllWithPartialSelection(t *testing.T) {
	page := []string{"a", "b", "c"}
	sel := NewSelection()
	sel.Toggle("a")
	sel.Toggle("zz") // stale id from another page

	sel.ToggleAll(page)

	if sel.Count() != 3 || sel.Has("zz") {
		t.Errorf("select all should replace the set with the page ids, got %v", sel.IDs())
	}
}

func TestSelection_IDsSorted(t *testing.T) {
	sel := NewSelection()
	for _, id := range []string{"c", "a", "b"} {
		sel.Toggle(id)
	}

	got := sel.IDs()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted ids %v, got %v", want, got)
		}
	}
}

func TestSelection_Clear(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("1")
	sel.Clear()
	if sel.Count() != 0 {
		t.Errorf("expected empty selection after clear, got %v", sel.IDs())
	}
}
