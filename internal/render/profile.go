package render

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"gps_route_stats/internal/stats"
	"gps_route_stats/internal/track"
)

const minProfileRangeM = 20.0

// Profile draws elevation against distance, with the given climbs shaded
// and numbered in rank order.
func Profile(points []track.TrackPoint, climbs []stats.ClimbSegment, opts Options) (image.Image, error) {
	opts = opts.withDefaults()
	var elevated []track.TrackPoint
	for _, p := range points {
		if p.Elevation != nil {
			elevated = append(elevated, p)
		}
	}
	if len(elevated) < 2 {
		return nil, ErrNoElevation
	}
	font, err := opts.font()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	minEle, maxEle := math.Inf(1), math.Inf(-1)
	for _, p := range elevated {
		minEle = math.Min(minEle, *p.Elevation)
		maxEle = math.Max(maxEle, *p.Elevation)
	}
	if maxEle-minEle < minProfileRangeM {
		mid := (maxEle + minEle) / 2
		minEle, maxEle = mid-minProfileRangeM/2, mid+minProfileRangeM/2
	}
	totalKm := points[len(points)-1].DistanceKm
	if totalKm <= 0 {
		totalKm = 1
	}

	w, h := float64(opts.Width), float64(opts.Height)
	labelSize := h / 20
	headerH := labelSize * 2.5
	left, right := labelSize*4, w-labelSize
	top, bottom := headerH, h-labelSize*2

	toX := func(km float64) float64 { return left + km/totalKm*(right-left) }
	toY := func(ele float64) float64 { return top + (maxEle-ele)/(maxEle-minEle)*(bottom-top) }

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	// Climbs
	labelFace := truetype.NewFace(font, &truetype.Options{Size: labelSize})
	dc.SetFontFace(labelFace)
	for i, c := range climbs {
		x1, x2 := toX(c.StartKm), toX(c.EndKm)
		dc.SetColor(opts.ClimbColor)
		dc.DrawRectangle(x1, top, x2-x1, bottom-top)
		dc.Fill()
		dc.SetColor(opts.BorderColor)
		dc.DrawStringAnchored(strconv.Itoa(i+1), (x1+x2)/2, top+labelSize, 0.5, 0.5)
	}

	// Area and line
	dc.MoveTo(toX(elevated[0].DistanceKm), bottom)
	for _, p := range elevated {
		dc.LineTo(toX(p.DistanceKm), toY(*p.Elevation))
	}
	dc.LineTo(toX(elevated[len(elevated)-1].DistanceKm), bottom)
	dc.ClosePath()
	dc.SetColor(opts.FillColor)
	dc.Fill()

	for i, p := range elevated {
		if i == 0 {
			dc.MoveTo(toX(p.DistanceKm), toY(*p.Elevation))
			continue
		}
		dc.LineTo(toX(p.DistanceKm), toY(*p.Elevation))
	}
	dc.SetColor(opts.PathColor)
	dc.SetLineWidth(opts.PathWidth)
	dc.Stroke()

	// Axes
	dc.SetColor(opts.IndicatorColor)
	dc.SetLineWidth(1)
	dc.DrawLine(left, bottom, right, bottom)
	dc.DrawLine(left, top, left, bottom)
	dc.Stroke()
	dc.DrawStringAnchored(fmt.Sprintf("%.0f m", maxEle), left-labelSize/2, top, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f m", minEle), left-labelSize/2, bottom, 1, 0.5)
	dc.DrawStringAnchored("0 km", left, bottom+labelSize, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f km", totalKm), right, bottom+labelSize, 1, 0.5)

	drawHeader(dc, font, opts, labelSize, left, right)
	return dc.Image(), nil
}

func drawHeader(dc *gg.Context, font *truetype.Font, opts Options, size, left, right float64) {
	y := size * 1.5
	iconSize := size * 1.1
	lineWidth := math.Max(1, size/12)

	dc.SetColor(opts.IndicatorColor)
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size * 1.2}))
	if opts.Title != "" {
		dc.DrawStringAnchored(opts.Title, left, y, 0, 0.5)
	}

	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	x := right
	if opts.MaxGradient != nil {
		text := fmt.Sprintf("%.1f %%", *opts.MaxGradient)
		tw, _ := dc.MeasureString(text)
		dc.DrawStringAnchored(text, x, y, 1, 0.5)
		x -= tw + iconSize*1.5
		drawSlopeIcon(dc, x, y, iconSize, lineWidth)
		x -= iconSize
	}
	if opts.AvgSpeedKmh != nil {
		text := fmt.Sprintf("%.0f km/h", math.Round(*opts.AvgSpeedKmh))
		tw, _ := dc.MeasureString(text)
		dc.DrawStringAnchored(text, x, y, 1, 0.5)
		x -= tw + iconSize
		drawSpeedIcon(dc, x, y, iconSize, lineWidth)
	}
}
