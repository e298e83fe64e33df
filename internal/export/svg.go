package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/disp4b/internal/scan"
)

type Point struct {
	X, Y float64
}

// Series is one curve of a plot.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

// ScanToSVG plots the total and dispersion energies of a scan against side
// length.
func ScanToSVG(samples []scan.Sample, width, height int) string {
	total := Series{Name: "total", Color: "#00ffcc"}
	disp := Series{Name: "dispersion", Color: "#ffcc00"}
	for _, s := range samples {
		total.Points = append(total.Points, Point{s.Side, s.Total})
		disp.Points = append(disp.Points, Point{s.Side, s.Dispersion})
	}
	return SeriesToSVG([]Series{disp, total}, width, height)
}

// SeriesToSVG draws every series on shared axes. Non-finite points are
// dropped; a dashed line marks y = 0 when it is in range.
func SeriesToSVG(series []Series, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	count := 0
	for _, s := range series {
		for _, p := range s.Points {
			if !finite(p) {
				continue
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			count++
		}
	}
	if count < 2 {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toX := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	toY := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if minY < 0 && maxY > 0 {
		y := toY(0)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, y, width, y))
	}

	for i, s := range series {
		var path strings.Builder
		for _, p := range s.Points {
			if !finite(p) {
				continue
			}
			cmd := " L"
			if path.Len() == 0 {
				cmd = "M"
			}
			path.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, toX(p.X), toY(p.Y)))
		}
		if path.Len() == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, s.Color, path.String()))
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16*(i+1), s.Color, s.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
