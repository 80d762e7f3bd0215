package paper

import (
	"fmt"

	"github.com/google/uuid"

	"honnef.co/go/paper/geom"
)

// Kind is the kind of an [Item].
type Kind uint8

const (
	KindDocument Kind = iota
	KindGroup
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindGroup:
		return "group"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Node is implemented by [*Item] and by the types embedding it: [*Group],
// [*Path] and [*Document].
type Node interface {
	item() *Item
}

// Item is a node in a document's item tree. Groups, paths and the document
// itself are items.
//
// An item's parent is held as a handle and resolved through the document on
// every access, while children are owned by their parent.
type Item struct {
	doc       *Document
	handle    Handle
	id        uuid.UUID
	kind      Kind
	name      string
	parent    Handle
	children  []*Item
	transform geom.Affine
	destroyed bool

	// Exactly one of these is set for groups and paths.
	group *Group
	path  *Path

	absTransform cache[geom.Affine]
	bounds       cache[geom.Rect]
	localBounds  cache[geom.Rect]
	strokeBounds cache[geom.Rect]
	handleBounds cache[geom.Rect]
}

func (it *Item) item() *Item { return it }

func (it *Item) setup(doc *Document, kind Kind) {
	it.doc = doc
	it.kind = kind
	it.transform = geom.Identity
	it.handle = doc.store.Create()
	it.id = uuid.New()
	doc.register(it)
}

func (it *Item) String() string {
	if it.name != "" {
		return fmt.Sprintf("%s %q (%s)", it.kind, it.name, it.id)
	}
	return fmt.Sprintf("%s %s", it.kind, it.id)
}

// Document returns the document the item belongs to.
func (it *Item) Document() *Document { return it.doc }

// Handle returns the item's handle in the document's attribute store.
func (it *Item) Handle() Handle { return it.handle }

// ID returns the item's stable identifier. See [Document.ItemByID].
func (it *Item) ID() uuid.UUID { return it.id }

func (it *Item) Kind() Kind { return it.kind }

func (it *Item) Name() string        { return it.name }
func (it *Item) SetName(name string) { it.name = name }

// IsDestroyed reports whether the item has been destroyed.
func (it *Item) IsDestroyed() bool { return it.destroyed }

// AsPath returns the item as a path, or nil if it isn't one.
func (it *Item) AsPath() *Path { return it.path }

// AsGroup returns the item as a group, or nil if it isn't one.
func (it *Item) AsGroup() *Group { return it.group }

// Parent returns the item's parent, or nil if it has none.
func (it *Item) Parent() *Item {
	if it.parent.IsZero() || it.doc == nil {
		return nil
	}
	return it.doc.lookup(it.parent)
}

// Children returns the item's children, bottom-most first. The returned
// slice must not be modified.
func (it *Item) Children() []*Item { return it.children }

func (it *Item) ChildCount() int { return len(it.children) }

// Child returns the i-th child, or nil if i is out of range.
func (it *Item) Child(i int) *Item {
	if i < 0 || i >= len(it.children) {
		return nil
	}
	return it.children[i]
}

// Index returns the item's position among its siblings, or -1 if it has no
// parent.
func (it *Item) Index() int {
	p := it.Parent()
	if p == nil {
		return -1
	}
	for i, c := range p.children {
		if c == it {
			return i
		}
	}
	return -1
}

// IsAncestorOf reports whether it is a strict ancestor of o.
func (it *Item) IsAncestorOf(o *Item) bool {
	for a := o.Parent(); a != nil; a = a.Parent() {
		if a == it {
			return true
		}
	}
	return false
}

// isCompoundChild reports whether the item is a member of a compound path.
func (it *Item) isCompoundChild() bool {
	p := it.Parent()
	return p != nil && p.kind == KindPath
}

// Destroy destroys the item and its entire subtree. Destroyed items are
// detached from the tree and their handles become invalid. Destroying the
// document root only destroys its children.
func (it *Item) Destroy() {
	if it.destroyed {
		return
	}
	if it.kind == KindDocument {
		for len(it.children) > 0 {
			it.children[len(it.children)-1].Destroy()
		}
		return
	}
	it.Remove()
	it.destroy()
}

func (it *Item) destroy() {
	for _, c := range it.children {
		c.parent = Handle{}
		c.destroy()
	}
	it.children = nil
	it.doc.unregister(it)
	it.doc.store.Destroy(it.handle)
	it.destroyed = true
}

// warnDestroyed logs an attempt to modify a destroyed item and reports
// whether the item is destroyed.
func (it *Item) warnDestroyed(op string) bool {
	if !it.destroyed {
		return false
	}
	Logger().Warn("operation on destroyed item", "op", op, "item", it.id)
	return true
}

func (it *Item) invalidateBounds() {
	it.bounds.invalidate()
	it.localBounds.invalidate()
	it.strokeBounds.invalidate()
	it.handleBounds.invalidate()
}

// invalidateAncestors dirties the bounds of every ancestor, up to the root.
// Ancestors that are compound paths also lose their derived geometry.
func (it *Item) invalidateAncestors() {
	for a := it.Parent(); a != nil; a = a.Parent() {
		a.invalidateBounds()
		if a.path != nil {
			a.path.invalidateCompound()
		}
	}
}

// invalidateAncestorStrokes dirties the stroke bounds of every ancestor.
func (it *Item) invalidateAncestorStrokes() {
	for a := it.Parent(); a != nil; a = a.Parent() {
		a.strokeBounds.invalidate()
		if a.path != nil {
			a.path.strokeMesh.invalidate()
		}
	}
}

// invalidateAbsolute dirties the absolute transform of the item and all of
// its descendants. Items whose stroke doesn't scale also lose their stroke
// bounds and meshes, as do the items between them and it. It reports
// whether any stroke bounds were dirtied.
func (it *Item) invalidateAbsolute() bool {
	it.absTransform.invalidate()
	dirtied := false
	if !it.ScaleStroke() {
		dirtied = true
	}
	for _, c := range it.children {
		if c.invalidateAbsolute() {
			dirtied = true
		}
	}
	if dirtied {
		it.strokeBounds.invalidate()
		if it.path != nil {
			it.path.strokeMesh.invalidate()
		}
	}
	return dirtied
}

// invalidateSubtree dirties every cache of the item and its descendants.
// It is used when an item changes parents, which can change its inherited
// style and absolute transform.
func (it *Item) invalidateSubtree() {
	it.absTransform.invalidate()
	it.invalidateBounds()
	if it.path != nil {
		it.path.invalidateGeometry()
	}
	for _, c := range it.children {
		c.invalidateSubtree()
	}
}

// Group is an item that only holds other items.
type Group struct {
	Item
}
