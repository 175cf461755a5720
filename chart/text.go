package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// Text paints the chart as horizontal bars for a terminal. Bar length is
// the bar height relative to the inner chart height, so scaling stays
// consistent with the graphical backends. Axes are not drawn.
type Text struct {
	Width int

	frame Frame
	bars  []Bar
	title string
}

func NewText(width int) *Text {
	if width <= 0 {
		width = 40
	}
	return &Text{Width: width}
}

func (t *Text) Clear(frame Frame) {
	t.frame = frame
	t.bars = nil
	t.title = ""
}

func (t *Text) DrawBar(bar Bar) { t.bars = append(t.bars, bar) }

func (t *Text) DrawAxis(Axis) {}

func (t *Text) DrawTitle(title Title) { t.title = title.Text }

func (t *Text) String() string {
	var sb strings.Builder

	if t.title != "" {
		sb.WriteString(t.title + "\n")
		sb.WriteString(strings.Repeat("─", utf8.RuneCountInString(t.title)) + "\n")
	}

	labelWidth := 0
	for _, b := range t.bars {
		if n := utf8.RuneCountInString(b.Label); n > labelWidth {
			labelWidth = n
		}
	}

	inner := t.frame.InnerHeight()
	for _, b := range t.bars {
		length := 0
		if inner > 0 {
			length = int(math.Round(b.Height / inner * float64(t.Width)))
		}
		fmt.Fprintf(&sb, "  %-*s %4d  %s\n", labelWidth, b.Label, b.Count, strings.Repeat("▓", length))
	}
	return sb.String()
}

func (t *Text) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}
