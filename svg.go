package paper

import (
	"bytes"
	"io"
	"strconv"

	"honnef.co/go/paper/geom"
)

// SVGPathData returns the path's outline, and those of its compound
// children, as SVG path data.
func (p *Path) SVGPathData() string {
	var buf bytes.Buffer
	p.appendSVG(&buf)
	return buf.String()
}

// WriteSVGPathData writes the output of [Path.SVGPathData] to w.
func (p *Path) WriteSVGPathData(w io.Writer) error {
	var buf bytes.Buffer
	p.appendSVG(&buf)
	_, err := buf.WriteTo(w)
	return err
}

func (p *Path) appendSVG(buf *bytes.Buffer) {
	for _, l := range p.loops() {
		buf.WriteByte('M')
		writePoint(buf, l.start)
		for _, c := range l.curves {
			if c.IsLinear(0) {
				buf.WriteByte('L')
				writePoint(buf, c.P3)
				continue
			}
			buf.WriteByte('C')
			writePoint(buf, c.P1)
			buf.WriteByte(' ')
			writePoint(buf, c.P2)
			buf.WriteByte(' ')
			writePoint(buf, c.P3)
		}
		if l.closed {
			buf.WriteByte('z')
		}
	}
}

func writePoint(buf *bytes.Buffer, pt geom.Point) {
	b := buf.AvailableBuffer()
	b = strconv.AppendFloat(b, pt.X, 'f', -1, 64)
	b = append(b, ' ')
	b = strconv.AppendFloat(b, pt.Y, 'f', -1, 64)
	buf.Write(b)
}
