// Package chart draws bucket counts as a bar chart through a pluggable
// Renderer. Layout and scales live here; backends only paint.
package chart

import (
	"strconv"

	"event_booking_go/analytics"
)

type Margin struct {
	Top, Right, Bottom, Left float64
}

// Frame is the outer drawing area. Everything else is drawn in inner
// coordinates, translated by the left and top margins.
type Frame struct {
	Width  float64
	Height float64
	Margin Margin
}

func (f Frame) InnerWidth() float64  { return f.Width - f.Margin.Left - f.Margin.Right }
func (f Frame) InnerHeight() float64 { return f.Height - f.Margin.Top - f.Margin.Bottom }

type Bar struct {
	Label   string
	Count   int
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Color   string
	Opacity float64
}

type Orient int

const (
	OrientBottom Orient = iota
	OrientLeft
)

type Tick struct {
	Label string
	Pos   float64
}

// Axis is a set of ticks along one edge of the inner area. Offset is the
// perpendicular position of the axis line.
type Axis struct {
	Orient      Orient
	Offset      float64
	Length      float64
	Ticks       []Tick
	LabelRotate float64
	FontSize    float64
}

type Title struct {
	Text     string
	X        float64
	Y        float64
	FontSize float64
}

// Renderer is a drawing backend. Clear always comes first and discards
// anything drawn before.
type Renderer interface {
	Clear(frame Frame)
	DrawBar(bar Bar)
	DrawAxis(axis Axis)
	DrawTitle(title Title)
}

type Chart struct {
	Frame       Frame
	Padding     float64
	Palette     []string
	Opacity     float64
	Title       string
	LabelRotate float64
	TickCount   int
}

// Default is the booking chart: 400x200, three colours, rotated labels.
func Default() Chart {
	return Chart{
		Frame: Frame{
			Width:  400,
			Height: 200,
			Margin: Margin{Top: 40, Right: 20, Bottom: 50, Left: 60},
		},
		Padding:     0.2,
		Palette:     []string{"#2196f3", "#4caf50", "#ff5722"},
		Opacity:     0.8,
		Title:       "Booking Count by Price Range",
		LabelRotate: -45,
		TickCount:   10,
	}
}

// Color picks the palette entry for the i-th bar, wrapping around.
func (c Chart) Color(i int) string {
	if len(c.Palette) == 0 {
		return "#000000"
	}
	return c.Palette[i%len(c.Palette)]
}

// Draw rebuilds the whole chart for data on r.
func (c Chart) Draw(data analytics.ChartData, r Renderer) {
	width, height := c.Frame.InnerWidth(), c.Frame.InnerHeight()

	x := NewBandScale(data.Labels, 0, width, c.Padding)
	y := NewLinearScale(0, float64(data.Max()), height, 0)

	r.Clear(c.Frame)

	for i, count := range data.Datasets {
		label := ""
		if i < len(data.Labels) {
			label = data.Labels[i]
		}
		top := y.Scale(float64(count))
		r.DrawBar(Bar{
			Label:   label,
			Count:   count,
			X:       x.At(i),
			Y:       top,
			Width:   x.Bandwidth(),
			Height:  height - top,
			Color:   c.Color(i),
			Opacity: c.Opacity,
		})
	}

	bottom := Axis{
		Orient:      OrientBottom,
		Offset:      height,
		Length:      width,
		LabelRotate: c.LabelRotate,
		FontSize:    12,
	}
	for i, label := range data.Labels {
		bottom.Ticks = append(bottom.Ticks, Tick{Label: label, Pos: x.At(i) + x.Bandwidth()/2})
	}
	r.DrawAxis(bottom)

	left := Axis{Orient: OrientLeft, Length: height, FontSize: 10}
	for _, v := range y.IntegerTicks(c.TickCount) {
		left.Ticks = append(left.Ticks, Tick{
			Label: strconv.FormatFloat(v, 'f', -1, 64),
			Pos:   y.Scale(v),
		})
	}
	r.DrawAxis(left)

	r.DrawTitle(Title{Text: c.Title, X: width / 2, Y: -10, FontSize: 16})
}
