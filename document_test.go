package paper

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"honnef.co/go/paper/geom"
)

func TestItemLookup(t *testing.T) {
	doc := NewDocument()
	diff(t, 1, doc.ItemCount())
	g := doc.CreateGroup()
	p := doc.CreatePath(geom.Pt(0, 0))
	g.AddChild(p)
	diff(t, 3, doc.ItemCount())

	if doc.ItemByID(p.ID()) != &p.Item || doc.ItemByHandle(p.Handle()) != &p.Item {
		t.Error("lookup did not find the path")
	}
	if doc.ItemByID(uuid.New()) != nil {
		t.Error("found an item for a random ID")
	}
	if p.ID() == g.ID() || p.ID() == uuid.Nil {
		t.Error("items should have distinct, non-nil IDs")
	}

	h, id := p.Handle(), p.ID()
	g.Destroy()
	diff(t, 1, doc.ItemCount())
	if doc.ItemByID(id) != nil || doc.ItemByHandle(h) != nil {
		t.Error("destroyed items can still be looked up")
	}

	// Handles are not reused.
	q := doc.CreatePath()
	if q.Handle() == h || doc.ItemByHandle(h) != nil {
		t.Error("stale handle resolves to a new item")
	}
}

func TestCloseTolerance(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0.5, 0)}

	p := NewDocument().CreatePath(pts...)
	p.Close()
	diff(t, 4, p.SegmentCount())
	diff(t, true, p.IsClosed())

	q := NewDocument(WithCloseTolerance(1)).CreatePath(pts...)
	q.Close()
	diff(t, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)}, positions(q))
	checkCurves(t, q)
}

func TestFlattenOptions(t *testing.T) {
	opts := FlattenOptions{Tolerance: 2, MaxDepth: 4}
	doc := NewDocument(WithFlattenOptions(opts))
	diff(t, opts, doc.FlattenOptions())
	c := doc.CreateCircle(geom.Pt(0, 0), 100)
	coarse := len(c.Contours()[0].Points)
	fine := len(c.Flatten(DefaultFlattenOptions)[0].Points)
	if coarse >= fine {
		t.Errorf("tolerance 2 gave %d points, 0.25 gave %d", coarse, fine)
	}
	// MaxDepth bounds the number of pieces per curve.
	if coarse > 4*16 {
		t.Errorf("got %d points for 4 curves with max depth 4", coarse)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	doc := NewDocument()
	p := doc.CreatePath()
	p.CubicCurveTo(geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3))
	if !strings.Contains(buf.String(), "curve command on empty path") {
		t.Errorf("missing debug message, got %q", buf.String())
	}

	buf.Reset()
	g := doc.CreateGroup()
	if err := g.AddChild(g); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "rejected tree edit") {
		t.Errorf("missing warning, got %q", buf.String())
	}

	buf.Reset()
	SetLogger(nil)
	p.Destroy()
	p.AddPoint(geom.Pt(0, 0))
	diff(t, "", buf.String())
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("the default logger should discard everything")
	}
}
