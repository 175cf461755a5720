package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVG keeps the drawing in memory and writes it out as a responsive
// SVG document: 100% wide and high, scaled through the viewBox.
type SVG struct {
	frame Frame
	bars  []Bar
	axes  []Axis
	title *Title
}

func NewSVG() *SVG {
	return &SVG{}
}

func (s *SVG) Clear(frame Frame) {
	s.frame = frame
	s.bars = nil
	s.axes = nil
	s.title = nil
}

func (s *SVG) DrawBar(bar Bar) { s.bars = append(s.bars, bar) }

func (s *SVG) DrawAxis(axis Axis) { s.axes = append(s.axes, axis) }

func (s *SVG) DrawTitle(t Title) { s.title = &t }

// Bytes returns the rendered document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	s.WriteTo(&buf)
	return buf.Bytes()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)

	f := s.frame
	canvas.StartviewUnit(100, 100, "%", 0, 0, px(f.Width), px(f.Height))
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", px(f.Margin.Left), px(f.Margin.Top)))

	for _, b := range s.bars {
		canvas.Rect(px(b.X), px(b.Y), px(b.Width), px(b.Height),
			`class="bar"`,
			fmt.Sprintf(`fill="%s"`, b.Color),
			fmt.Sprintf("opacity:%g", b.Opacity),
		)
	}
	for _, a := range s.axes {
		s.writeAxis(canvas, a)
	}
	if t := s.title; t != nil {
		canvas.Text(px(t.X), px(t.Y), t.Text,
			`text-anchor="middle"`,
			fmt.Sprintf("font-size:%gpx;font-weight:bold", t.FontSize),
		)
	}

	canvas.Gend()
	canvas.End()
	return cw.n, cw.err
}

func (s *SVG) writeAxis(canvas *svg.SVG, a Axis) {
	const tickSize = 6
	stroke := `stroke="currentColor"`

	switch a.Orient {
	case OrientBottom:
		canvas.Gtransform(fmt.Sprintf("translate(0,%d)", px(a.Offset)))
		canvas.Line(0, 0, px(a.Length), 0, stroke)
		for _, t := range a.Ticks {
			canvas.Line(px(t.Pos), 0, px(t.Pos), tickSize, stroke)
			canvas.Gtransform(fmt.Sprintf("translate(%d,%d) rotate(%g)", px(t.Pos), tickSize+3, a.LabelRotate))
			canvas.Text(0, 0, t.Label,
				`text-anchor="end"`,
				`dx="-0.8em"`,
				`dy="0.15em"`,
				fmt.Sprintf(`font-size="%gpx"`, a.FontSize),
			)
			canvas.Gend()
		}
		canvas.Gend()
	case OrientLeft:
		canvas.Gtransform(fmt.Sprintf("translate(%d,0)", px(a.Offset)))
		canvas.Line(0, 0, 0, px(a.Length), stroke)
		for _, t := range a.Ticks {
			canvas.Line(-tickSize, px(t.Pos), 0, px(t.Pos), stroke)
			canvas.Text(-tickSize-3, px(t.Pos), t.Label,
				`text-anchor="end"`,
				`dy="0.32em"`,
				fmt.Sprintf(`font-size="%gpx"`, a.FontSize),
			)
		}
		canvas.Gend()
	}
}

func px(v float64) int {
	return int(math.Round(v))
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
