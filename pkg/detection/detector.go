// Package detection finds faces in frames with a cascade classifier and
// draws their outlines.
package detection

import (
	"image"

	"gocv.io/x/gocv"
)

// Classifier is the cascade detection call the annotator depends on.
// *gocv.CascadeClassifier satisfies it directly.
type Classifier interface {
	// DetectMultiScaleWithParams returns face regions in img's coordinates
	DetectMultiScaleWithParams(img gocv.Mat, scale float64, minNeighbors, flags int,
		minSize, maxSize image.Point) []image.Rectangle

	// Close releases resources
	Close() error
}

// Face is one detected region in original frame pixels.
type Face struct {
	Rect image.Rectangle
}

// Center returns the center point of the face
func (f Face) Center() image.Point {
	return image.Pt((f.Rect.Min.X+f.Rect.Max.X)/2, (f.Rect.Min.Y+f.Rect.Max.Y)/2)
}

// Area returns the area of the bounding box
func (f Face) Area() int {
	return f.Rect.Dx() * f.Rect.Dy()
}

// Faces wraps raw rectangles.
func Faces(rects []image.Rectangle) []Face {
	faces := make([]Face, len(rects))
	for i, r := range rects {
		faces[i] = Face{Rect: r}
	}
	return faces
}

// Largest picks the face with the biggest area, or nil if there are none.
func Largest(faces []Face) *Face {
	if len(faces) == 0 {
		return nil
	}

	best := &faces[0]
	for i := 1; i < len(faces); i++ {
		if faces[i].Area() > best.Area() {
			best = &faces[i]
		}
	}
	return best
}
