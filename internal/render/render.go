// Package render draws PNG previews of a processed track: an elevation
// profile with its climbs and an outline of the route.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	ErrTooFewPoints = errors.New("render: need at least two points")
	ErrNoElevation  = errors.New("render: track has no elevation data")
)

// --- Options ---

type Options struct {
	Width  int
	Height int

	PathWidth      float64
	PathColor      color.Color
	FillColor      color.Color
	ClimbColor     color.Color
	BorderColor    color.Color
	IndicatorColor color.Color
	Background     color.Color

	// Font defaults to Go Regular.
	Font  *truetype.Font
	Title string

	// Optional figures shown in the profile header.
	AvgSpeedKmh *float64
	MaxGradient *float64
}

func DefaultOptions() Options {
	return Options{
		Width:          1200,
		Height:         400,
		PathWidth:      3,
		PathColor:      color.RGBA{R: 255, A: 255},
		FillColor:      color.RGBA{R: 100, G: 180, B: 255, A: 120},
		ClimbColor:     color.RGBA{R: 255, G: 152, A: 70},
		BorderColor:    color.RGBA{R: 255, G: 152, A: 255},
		IndicatorColor: color.White,
		Background:     color.RGBA{R: 30, G: 30, B: 30, A: 255},
	}
}

// withDefaults fills unset sizes and colors from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = d.Width, d.Height
	}
	if o.PathWidth <= 0 {
		o.PathWidth = d.PathWidth
	}
	o.PathColor = orDefault(o.PathColor, d.PathColor)
	o.FillColor = orDefault(o.FillColor, d.FillColor)
	o.ClimbColor = orDefault(o.ClimbColor, d.ClimbColor)
	o.BorderColor = orDefault(o.BorderColor, d.BorderColor)
	o.IndicatorColor = orDefault(o.IndicatorColor, d.IndicatorColor)
	o.Background = orDefault(o.Background, d.Background)
	return o
}

func orDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

func (o Options) font() (*truetype.Font, error) {
	if o.Font != nil {
		return o.Font, nil
	}
	return goRegular()
}

var goRegular = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// ParseHexColor reads a #rrggbb color.
func ParseHexColor(s string) (color.Color, error) {
	var r, g, b uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return color.Black, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// --- Drawing helpers ---

func drawSpeedIcon(dc *gg.Context, x, y, size, lineWidth float64) {
	dc.Push()
	dc.Translate(x, y)
	dc.SetLineWidth(lineWidth)

	dc.DrawArc(0, 0, size/2, gg.Radians(165), gg.Radians(375))
	dc.Stroke()

	needle := gg.Radians(210)
	dc.MoveTo(0, 0)
	dc.LineTo(math.Cos(needle)*size/2.2, math.Sin(needle)*size/2.2)
	dc.Stroke()
	dc.Pop()
}

func drawSlopeIcon(dc *gg.Context, x, y, size, lineWidth float64) {
	dc.Push()
	dc.Translate(x, y)
	dc.SetLineWidth(lineWidth)
	legY := size * math.Tan(gg.Radians(30))
	dc.MoveTo(size, legY/2)
	dc.LineTo(0, legY/2)
	dc.LineTo(size, -legY/2)
	dc.Stroke()
	dc.Pop()
}

func drawMarker(dc *gg.Context, x, y float64, fill color.Color) {
	dc.SetColor(fill)
	dc.DrawPoint(x, y, 8)
	dc.Fill()
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.DrawPoint(x, y, 8)
	dc.Stroke()
}

// deg2num projects to Web-Mercator tile coordinates at zoom.
func deg2num(lat, lon float64, zoom int) (float64, float64) {
	latRad := lat * math.Pi / 180
	n := math.Pow(2, float64(zoom))
	xtile := (lon + 180) / 360 * n
	ytile := (1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * n
	return xtile, ytile
}
