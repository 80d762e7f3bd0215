package paper

import (
	"fmt"
	"slices"
)

// AddChild appends child to the item's children, making it the top-most
// child. The child is first removed from its current parent.
func (it *Item) AddChild(child Node) error {
	return it.InsertChild(len(it.children), child)
}

// InsertChild inserts child at index i of the item's children. Index
// len(Children()) appends.
//
// It returns [ErrCycle] if child is the item or one of its ancestors,
// [ErrDocumentRoot] if child is a document, [ErrForeignDocument] if the
// two belong to different documents, [ErrDestroyed] if either is
// destroyed, [ErrIndexOutOfRange] for a bad index and [ErrCompoundNesting]
// if the edit would create anything other than a path holding childless
// paths.
func (it *Item) InsertChild(i int, child Node) error {
	c := child.item()
	if err := it.checkInsert(c); err != nil {
		Logger().Warn("rejected tree edit", "parent", it.id, "child", c.id, "err", err)
		return err
	}
	// Removing the child first may shift the target index.
	if c.Parent() == it {
		if old := c.Index(); old < i {
			i--
		}
	}
	if i < 0 || i > len(it.children)-boolToInt(c.Parent() == it) {
		return fmt.Errorf("insert at %d: %w", i, ErrIndexOutOfRange)
	}
	c.Remove()
	it.children = slices.Insert(it.children, i, c)
	c.parent = it.handle
	c.invalidateSubtree()
	c.invalidateAncestors()
	return nil
}

func (it *Item) checkInsert(c *Item) error {
	switch {
	case it.destroyed || c.destroyed:
		return ErrDestroyed
	case c.kind == KindDocument:
		return ErrDocumentRoot
	case c.doc != it.doc:
		return ErrForeignDocument
	case c == it || c.IsAncestorOf(it):
		return ErrCycle
	}
	if it.kind == KindPath {
		if c.kind != KindPath || len(c.children) > 0 || it.isCompoundChild() {
			return ErrCompoundNesting
		}
	}
	return nil
}

// InsertAbove moves the item directly above other, as a sibling.
func (it *Item) InsertAbove(other Node) error {
	return it.insertNextTo(other.item(), 1)
}

// InsertBelow moves the item directly below other, as a sibling.
func (it *Item) InsertBelow(other Node) error {
	return it.insertNextTo(other.item(), 0)
}

func (it *Item) insertNextTo(o *Item, offset int) error {
	p := o.Parent()
	if p == nil {
		if o.kind == KindDocument {
			return ErrDocumentRoot
		}
		return fmt.Errorf("%s has no parent: %w", o, ErrIndexOutOfRange)
	}
	if it == o {
		return nil
	}
	return p.InsertChild(o.Index()+offset, it)
}

// Remove detaches the item from its parent. The item stays valid and can
// be inserted again.
func (it *Item) Remove() {
	p := it.Parent()
	if p == nil {
		it.parent = Handle{}
		return
	}
	i := it.Index()
	// Dirty while the parent chain is still reachable.
	it.invalidateAncestors()
	p.children = slices.Delete(p.children, i, i+1)
	it.parent = Handle{}
	it.invalidateSubtree()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
