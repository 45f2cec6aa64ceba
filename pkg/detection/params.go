package detection

import (
	"image"
	"image/color"
)

// Params holds the fixed detection tuning. It is a plain value: the
// annotator keeps its own copy, so nothing can change it mid-run.
type Params struct {
	ImageScale   float64     // Linear downscale applied before detection
	ScaleFactor  float64     // Window growth per pyramid step
	MinNeighbors int         // Overlapping candidates required to accept a region
	Flags        int         // Cascade flags (0 = no pruning)
	MinSize      image.Point // Smallest face, in downscaled pixels
	MaxSize      image.Point // Largest face, zero means unbounded

	Color     color.RGBA // Outline color
	Thickness int        // Outline width in pixels
}

// DarkViolet is the outline color for detected faces.
var DarkViolet = color.RGBA{R: 148, G: 0, B: 211, A: 0}

// DefaultParams returns the tuning for fast detection on live video:
// 2x downscale, 1.2 scale factor, 2 neighbors, no flags, 20x20 minimum.
func DefaultParams() Params {
	return Params{
		ImageScale:   2,
		ScaleFactor:  1.2,
		MinNeighbors: 2,
		Flags:        0,
		MinSize:      image.Pt(20, 20),
		MaxSize:      image.Point{},

		Color:     DarkViolet,
		Thickness: 1,
	}
}

// Validate checks if the params are usable.
// Returns a list of validation errors, or nil if valid.
func (p Params) Validate() []string {
	var errors []string

	if p.ImageScale < 1 {
		errors = append(errors, "image scale must be >= 1")
	}
	if p.ScaleFactor <= 1 {
		errors = append(errors, "scale factor must be > 1")
	}
	if p.MinNeighbors < 0 {
		errors = append(errors, "min neighbors must be >= 0")
	}
	if p.MinSize.X <= 0 || p.MinSize.Y <= 0 {
		errors = append(errors, "min size must be positive")
	}
	if p.Thickness < 1 {
		errors = append(errors, "thickness must be >= 1")
	}

	return errors
}

// scaledSize returns the downscaled dimensions for a cols x rows frame,
// rounded to the nearest pixel and never smaller than 1x1.
func (p Params) scaledSize(cols, rows int) image.Point {
	w := int(float64(cols)/p.ImageScale + 0.5)
	h := int(float64(rows)/p.ImageScale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Pt(w, h)
}

// upscale maps a region found on the downscaled image back into the
// original frame and clips it to the frame bounds.
func (p Params) upscale(r image.Rectangle, bounds image.Rectangle) image.Rectangle {
	s := p.ImageScale
	mapped := image.Rect(
		int(float64(r.Min.X)*s),
		int(float64(r.Min.Y)*s),
		int(float64(r.Max.X)*s),
		int(float64(r.Max.Y)*s),
	)
	return mapped.Intersect(bounds)
}
