package paper

import (
	"github.com/google/uuid"

	"honnef.co/go/paper/geom"
	"honnef.co/go/paper/internal/store"
)

// DefaultCloseTolerance is the distance within which [Path.ClosePath]
// considers the last and first anchors coincident.
const DefaultCloseTolerance = 1e-6

// Document is the root of an item tree and the factory for its items.
type Document struct {
	Item

	store    AttributeStore
	items    map[Handle]*Item
	byID     map[uuid.UUID]*Item
	flatten  FlattenOptions
	closeTol float64
}

// Option configures a [Document].
type Option func(*Document)

// WithStore makes the document keep item attributes in s instead of a new
// [store.Store].
func WithStore(s AttributeStore) Option {
	return func(doc *Document) { doc.store = s }
}

// WithFlattenOptions sets the options used to flatten paths for filling,
// stroking and drawing.
func WithFlattenOptions(opts FlattenOptions) Option {
	return func(doc *Document) { doc.flatten = opts }
}

// WithCloseTolerance sets the tolerance used by [Path.Close].
func WithCloseTolerance(tol float64) Option {
	return func(doc *Document) { doc.closeTol = tol }
}

// NewDocument returns an empty document.
func NewDocument(opts ...Option) *Document {
	doc := &Document{
		items:    make(map[Handle]*Item),
		byID:     make(map[uuid.UUID]*Item),
		flatten:  DefaultFlattenOptions,
		closeTol: DefaultCloseTolerance,
	}
	for _, opt := range opts {
		opt(doc)
	}
	if doc.store == nil {
		doc.store = store.New()
	}
	doc.Item.setup(doc, KindDocument)
	return doc
}

// Store returns the document's attribute store.
func (doc *Document) Store() AttributeStore { return doc.store }

// FlattenOptions returns the options used to flatten the document's paths.
func (doc *Document) FlattenOptions() FlattenOptions { return doc.flatten }

func (doc *Document) register(it *Item) {
	doc.items[it.handle] = it
	doc.byID[it.id] = it
}

func (doc *Document) unregister(it *Item) {
	delete(doc.items, it.handle)
	delete(doc.byID, it.id)
}

// lookup resolves a handle, returning nil for stale handles.
func (doc *Document) lookup(h Handle) *Item {
	if !doc.store.Valid(h) {
		return nil
	}
	return doc.items[h]
}

// ItemByHandle returns the live item with handle h, or nil.
func (doc *Document) ItemByHandle(h Handle) *Item {
	return doc.lookup(h)
}

// ItemByID returns the live item with the given ID, or nil.
func (doc *Document) ItemByID(id uuid.UUID) *Item {
	return doc.byID[id]
}

// ItemCount returns the number of live items, including the document.
func (doc *Document) ItemCount() int {
	return len(doc.items)
}

func (doc *Document) attach(it *Item) {
	doc.children = append(doc.children, it)
	it.parent = doc.handle
	it.invalidateAncestors()
}

// CreateGroup returns a new, empty group attached to the root.
func (doc *Document) CreateGroup() *Group {
	g := &Group{}
	g.Item.setup(doc, KindGroup)
	g.Item.group = g
	doc.attach(&g.Item)
	return g
}

// CreatePath returns a new open path attached to the root, with a straight
// line through points.
func (doc *Document) CreatePath(points ...geom.Point) *Path {
	p := doc.newPath()
	for _, pt := range points {
		p.segments = append(p.segments, &Segment{point: pt})
	}
	p.renumber(0)
	p.rebuildCurves()
	doc.attach(&p.Item)
	return p
}

func (doc *Document) newPath() *Path {
	p := &Path{}
	p.Item.setup(doc, KindPath)
	p.Item.path = p
	return p
}
