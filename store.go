package paper

import "honnef.co/go/paper/internal/store"

// Handle identifies an item in its document's attribute store.
type Handle = store.Handle

// Attr is the tag under which an attribute is stored.
type Attr = store.Tag

// AttributeStore holds per-item attributes. Documents create a node in the
// store for every item and destroy it together with the item. Handles of
// destroyed nodes must never become valid again.
type AttributeStore interface {
	Create() Handle
	Destroy(h Handle)
	Valid(h Handle) bool
	Has(h Handle, tag Attr) bool
	Get(h Handle, tag Attr) (any, bool)
	Set(h Handle, tag Attr, v any) bool
	Remove(h Handle, tag Attr) bool
}

var _ AttributeStore = (*store.Store)(nil)
