package detection

import (
	"image"
	"time"

	"github.com/teslashibe/facedetect/internal/log"
	"gocv.io/x/gocv"
)

// Annotator runs the detect-and-draw step for one classifier.
// It owns its grayscale working buffers and reshapes them only when the
// frame size changes. Not safe for concurrent use.
type Annotator struct {
	classifier Classifier
	params     Params

	gray  gocv.Mat
	small gocv.Mat
	size  image.Point // frame size the buffers were shaped for
	ready bool
}

// NewAnnotator creates an annotator. The classifier stays owned by the caller.
func NewAnnotator(classifier Classifier, params Params) *Annotator {
	return &Annotator{
		classifier: classifier,
		params:     params,
	}
}

// Params returns the tuning this annotator was built with.
func (a *Annotator) Params() Params {
	return a.params
}

// Annotate returns a copy of frame with an outline drawn around every
// detected face, plus the faces in frame coordinates. frame is not modified.
// The caller must Close the returned Mat.
func (a *Annotator) Annotate(frame gocv.Mat) (gocv.Mat, []image.Rectangle) {
	out := frame.Clone()
	if frame.Empty() {
		return out, nil
	}

	faces := a.Detect(frame)
	for _, r := range faces {
		gocv.Rectangle(&out, r, a.params.Color, a.params.Thickness)
	}
	return out, faces
}

// Detect returns face regions in frame coordinates without drawing.
func (a *Annotator) Detect(frame gocv.Mat) []image.Rectangle {
	if frame.Empty() {
		return nil
	}

	cols, rows := frame.Cols(), frame.Rows()
	a.ensureBuffers(cols, rows)

	switch frame.Channels() {
	case 1:
		frame.CopyTo(&a.gray)
	case 4:
		gocv.CvtColor(frame, &a.gray, gocv.ColorBGRAToGray)
	default:
		gocv.CvtColor(frame, &a.gray, gocv.ColorBGRToGray)
	}

	small := a.params.scaledSize(cols, rows)
	gocv.Resize(a.gray, &a.small, small, 0, 0, gocv.InterpolationLinear)
	gocv.EqualizeHist(a.small, &a.small)

	start := time.Now()
	found := a.classifier.DetectMultiScaleWithParams(
		a.small,
		a.params.ScaleFactor,
		a.params.MinNeighbors,
		a.params.Flags,
		a.params.MinSize,
		a.params.MaxSize,
	)
	elapsed := time.Since(start)

	bounds := image.Rect(0, 0, cols, rows)
	faces := make([]image.Rectangle, 0, len(found))
	for _, r := range found {
		mapped := a.params.upscale(r, bounds)
		if mapped.Empty() {
			continue
		}
		faces = append(faces, mapped)
	}

	attrs := []any{"faces", len(faces), "detection_ms", float64(elapsed.Microseconds()) / 1000}
	if best := Largest(Faces(faces)); best != nil {
		attrs = append(attrs, "largest", best.Rect.String())
	}
	log.Debug("detection", attrs...)

	return faces
}

func (a *Annotator) ensureBuffers(cols, rows int) {
	size := image.Pt(cols, rows)
	if a.ready && a.size == size {
		return
	}
	a.releaseBuffers()

	small := a.params.scaledSize(cols, rows)
	a.gray = gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	a.small = gocv.NewMatWithSize(small.Y, small.X, gocv.MatTypeCV8UC1)
	a.size = size
	a.ready = true
}

func (a *Annotator) releaseBuffers() {
	if !a.ready {
		return
	}
	a.gray.Close()
	a.small.Close()
	a.ready = false
}

// Close releases the working buffers. The classifier is not closed.
func (a *Annotator) Close() error {
	a.releaseBuffers()
	return nil
}
