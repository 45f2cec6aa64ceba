package detection

import (
	"fmt"
	"image"

	pigo "github.com/esimov/pigo/core"
	"gocv.io/x/gocv"
)

// pigo tuning that has no counterpart in the Haar parameters.
const (
	pigoShiftFactor  = 0.1
	pigoIoUThreshold = 0.2
	pigoMinQuality   = 5.0

	// header (8) + tree depth (4) + tree count (4)
	pigoHeaderSize = 16
)

// pigoClassifier runs a pigo pixel-comparison cascade behind the same
// call shape as an OpenCV cascade.
type pigoClassifier struct {
	// detect runs the cascade and clusters overlapping hits.
	detect func(pigo.CascadeParams) []pigo.Detection
}

func newPigoClassifier(data []byte) (c Classifier, err error) {
	if len(data) < pigoHeaderSize {
		return nil, fmt.Errorf("%w: pigo cascade too short (%d bytes)", ErrCascadeInvalid, len(data))
	}

	// Unpack indexes the packet without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("%w: malformed pigo cascade: %v", ErrCascadeInvalid, r)
		}
	}()

	cascade, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCascadeInvalid, err)
	}
	return &pigoClassifier{
		detect: func(params pigo.CascadeParams) []pigo.Detection {
			dets := cascade.RunCascade(params, 0.0)
			return cascade.ClusterDetections(dets, pigoIoUThreshold)
		},
	}, nil
}

// DetectMultiScaleWithParams expects a single channel 8-bit image.
// minNeighbors and flags are ignored: pigo clusters by overlap instead.
func (p *pigoClassifier) DetectMultiScaleWithParams(img gocv.Mat, scale float64, minNeighbors, flags int,
	minSize, maxSize image.Point) []image.Rectangle {
	if img.Empty() || img.Channels() != 1 {
		return nil
	}

	cols, rows := img.Cols(), img.Rows()

	minDim := minSize.X
	if minSize.Y < minDim {
		minDim = minSize.Y
	}
	maxDim := maxSize.X
	if maxSize.Y > maxDim {
		maxDim = maxSize.Y
	}
	if maxDim <= 0 {
		maxDim = cols
		if rows > maxDim {
			maxDim = rows
		}
	}

	params := pigo.CascadeParams{
		MinSize:     minDim,
		MaxSize:     maxDim,
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: scale,
		ImageParams: pigo.ImageParams{
			Pixels: img.ToBytes(),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	var rects []image.Rectangle
	for _, d := range p.detect(params) {
		if d.Q < pigoMinQuality {
			continue
		}
		half := d.Scale / 2
		rects = append(rects, image.Rect(d.Col-half, d.Row-half, d.Col+half, d.Row+half))
	}
	return rects
}

// Close is a no-op; pigo cascades are plain Go memory.
func (p *pigoClassifier) Close() error {
	return nil
}
