package stats

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Chart geometry, in SVG user units.
const (
	ChartHeight = 200
	GridLines   = 4
	BarWidth    = 12
	BarInnerGap = 2
	GroupGap    = 14

	padTop    = 16
	padRight  = 16
	padBottom = 44
	padLeft   = 48
)

// BarColors cycle over developers.
var BarColors = []string{"#c8a88a", "#1a1a14", "#636358", "#4a6800"}

var printer = message.NewPrinter(language.English)

// GridLine is a horizontal guide with its axis label.
type GridLine struct {
	Y      float64
	Label  string
	Dashed bool
}

// Bar is one developer's value on one day.
type Bar struct {
	Dev    string
	Value  float64
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  string
}

// Group is the bars of one day.
type Group struct {
	Label  string
	LabelX float64
	Bars   []Bar
}

// Total is a developer's sum shown in the chart header and legend.
type Total struct {
	Dev   string
	Value float64
	Color string
}

// Formatted returns the total with thousands separators.
func (t Total) Formatted() string {
	if t.Value == math.Trunc(t.Value) && math.Abs(t.Value) < 1e15 {
		return printer.Sprintf("%d", int64(t.Value))
	}
	return printer.Sprintf("%.1f", t.Value)
}

// Chart is a ready-to-draw grouped bar chart.
type Chart struct {
	Width    float64
	Height   float64
	Left     float64
	Right    float64
	Baseline float64
	Max      float64
	Grid     []GridLine
	Groups   []Group
	Totals   []Total
}

// Layout computes the chart for s. It returns false when there is no day or
// no developer to draw.
func Layout(s Stats) (Chart, bool) {
	devs := s.DevNames()
	if len(s.Daily) == 0 || len(devs) == 0 {
		return Chart{}, false
	}

	days := float64(len(s.Daily))
	groupWidth := float64(len(devs))*BarWidth + float64(len(devs)-1)*BarInnerGap
	width := padLeft + padRight + days*groupWidth + (days+1)*GroupGap
	plotH := float64(ChartHeight - padTop - padBottom)
	baseline := padTop + plotH

	peak := 1.0
	for _, d := range s.Daily {
		for _, dev := range devs {
			peak = math.Max(peak, d.Value(dev))
		}
	}
	ceil := NiceMax(peak)
	toY := func(v float64) float64 { return padTop + plotH - v/ceil*plotH }

	c := Chart{
		Width:    width,
		Height:   ChartHeight,
		Left:     padLeft,
		Right:    width - padRight,
		Baseline: baseline,
		Max:      ceil,
	}

	for i := 0; i <= GridLines; i++ {
		v := ceil / GridLines * float64(i)
		c.Grid = append(c.Grid, GridLine{Y: toY(v), Label: FormatLabel(v), Dashed: i > 0})
	}

	for i, d := range s.Daily {
		x := padLeft + GroupGap + float64(i)*(groupWidth+GroupGap)
		g := Group{Label: FormatDate(d.Date), LabelX: x + groupWidth/2}
		for j, dev := range devs {
			v := d.Value(dev)
			h := math.Max(v/ceil*plotH, 0)
			g.Bars = append(g.Bars, Bar{
				Dev:    dev,
				Value:  v,
				X:      x + float64(j)*(BarWidth+BarInnerGap),
				Y:      baseline - h,
				Width:  BarWidth,
				Height: h,
				Color:  BarColors[j%len(BarColors)],
			})
		}
		c.Groups = append(c.Groups, g)
	}

	for j, dev := range devs {
		c.Totals = append(c.Totals, Total{Dev: dev, Value: s.Total(dev), Color: BarColors[j%len(BarColors)]})
	}

	return c, true
}

// NiceMax rounds v up to 1, 2 or 5 times a power of ten. Non-positive values
// give 100.
func NiceMax(v float64) float64 {
	if v <= 0 {
		return 100
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	normalized := v / magnitude
	switch {
	case normalized <= 1:
		return magnitude
	case normalized <= 2:
		return 2 * magnitude
	case normalized <= 5:
		return 5 * magnitude
	default:
		return 10 * magnitude
	}
}

// FormatLabel renders an axis value: 1500 -> "1.5k", 2000 -> "2k", 900 -> "900".
func FormatLabel(v float64) string {
	if v >= 1000 {
		prec := 1
		if math.Mod(v, 1000) == 0 {
			prec = 0
		}
		return strconv.FormatFloat(v/1000, 'f', prec, 64) + "k"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate renders an ISO date as MM/DD. Other input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("01/02")
}
