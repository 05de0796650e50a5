package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"gps_route_stats/internal/pipeline"
)

// routeZoom only fixes the projection scale; the outline is refit to the
// canvas afterwards.
const routeZoom = 16

// Route draws the polyline outline, fitted to the canvas with a margin, and
// marks the start in green and the finish in red.
func Route(points []pipeline.DisplayPoint, opts Options) (image.Image, error) {
	opts = opts.withDefaults()
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		xs[i], ys[i] = deg2num(p.Lat, p.Lon, routeZoom)
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	w, h := float64(opts.Width), float64(opts.Height)
	margin := math.Min(w, h) * 0.08
	spanX, spanY := maxX-minX, maxY-minY
	scale := 1.0
	if spanX > 0 || spanY > 0 {
		scale = math.Min((w-2*margin)/math.Max(spanX, 1e-12), (h-2*margin)/math.Max(spanY, 1e-12))
	}
	// Center the outline in both directions.
	offX := (w - spanX*scale) / 2
	offY := (h - spanY*scale) / 2
	toScreen := func(i int) (float64, float64) {
		return offX + (xs[i]-minX)*scale, offY + (ys[i]-minY)*scale
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	borderWidth := math.Min(w, h) * 0.01
	dc.SetColor(opts.BorderColor)
	dc.SetLineWidth(borderWidth)
	dc.DrawRectangle(borderWidth/2, borderWidth/2, w-borderWidth, h-borderWidth)
	dc.Stroke()

	dc.SetColor(opts.PathColor)
	dc.SetLineWidth(opts.PathWidth)
	for i := range points {
		x, y := toScreen(i)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.Stroke()

	sx, sy := toScreen(0)
	ex, ey := toScreen(len(points) - 1)
	drawMarker(dc, ex, ey, color.RGBA{R: 220, A: 255})
	drawMarker(dc, sx, sy, color.RGBA{G: 180, A: 255})

	return dc.Image(), nil
}
