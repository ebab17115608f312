// Package image renders the summary artifact: a single PNG describing the
// current dataset (row count, top five countries by estimated GDP and the
// global refresh timestamp). The file is fully overwritten on every render;
// there is no versioning.
package image

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"country-currency-api/internal/model"
)

const (
	summaryFile = "summary.png"
	width       = 800
	height      = 600
)

// Generator draws summary images into a cache directory.
type Generator struct {
	dir string
}

// NewGenerator builds a Generator writing into dir. The directory is
// created lazily on first render.
func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir}
}

// Path returns the well-known location of the summary image.
func (g *Generator) Path() string {
	return filepath.Join(g.dir, summaryFile)
}

// Render draws the snapshot and atomically replaces the summary file, so a
// concurrent reader never observes a half-written PNG. A nil refreshedAt
// renders as "Never". It returns the final path of the artifact.
func (g *Generator) Render(total int64, top []model.TopCountry, refreshedAt *string) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)

	// Background gradient, dark to lighter blue.
	grad := gg.NewLinearGradient(0, 0, 0, height)
	grad.AddColorStop(0, color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff})
	grad.AddColorStop(1, color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("Country Data Summary", width/2, 60, 0.5, 0.5)

	// Card border.
	dc.SetHexColor("#60a5fa")
	dc.SetLineWidth(2)
	dc.DrawRectangle(50, 100, 700, 420)
	dc.Stroke()

	dc.SetHexColor("#fbbf24")
	dc.DrawString(fmt.Sprintf("Total Countries: %d", total), 80, 150)

	dc.SetRGB(1, 1, 1)
	dc.DrawString("Top 5 Countries by GDP:", 80, 200)

	y := 240.0
	for i, tc := range top {
		if i == 0 {
			dc.SetHexColor("#fbbf24")
		} else {
			dc.SetHexColor("#e5e7eb")
		}
		dc.DrawString(fmt.Sprintf("%d. %s - $%s", i+1, tc.Name, FormatGDP(tc.EstimatedGDP)), 100, y)
		y += 35
	}

	dc.SetHexColor("#cbd5e1")
	dc.DrawStringAnchored("Last Updated: "+refreshLabel(refreshedAt), width/2, 560, 0.5, 0.5)

	// Write to a temp file first and rename over the target.
	tmp, err := os.CreateTemp(g.dir, summaryFile+".*")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	tmpName := tmp.Name()
	if err := dc.EncodePNG(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("encode summary image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	path := g.Path()
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replace summary image: %w", err)
	}
	return path, nil
}

// FormatGDP abbreviates a GDP value with an M, B or T suffix at the
// million, billion and trillion thresholds, two decimal places.
func FormatGDP(v float64) string {
	const (
		million  = 1e6
		billion  = 1e9
		trillion = 1e12
	)
	switch {
	case v == 0:
		return "0"
	case v >= trillion:
		return fmt.Sprintf("%.2fT", v/trillion)
	case v >= billion:
		return fmt.Sprintf("%.2fB", v/billion)
	default:
		return fmt.Sprintf("%.2fM", v/million)
	}
}

// refreshLabel formats the refresh timestamp for display; nil means the
// dataset was never refreshed.
func refreshLabel(refreshedAt *string) string {
	if refreshedAt == nil || *refreshedAt == "" {
		return "Never"
	}
	if ts, err := time.Parse(time.RFC3339, *refreshedAt); err == nil {
		return ts.UTC().Format("Jan 2, 2006 3:04 PM")
	}
	return *refreshedAt
}
