package camera

import (
	"image"

	"github.com/teslashibe/facedetect/internal/log"
	"gocv.io/x/gocv"
)

// Normalizer copies frames into a stable top-down working buffer.
// The buffer is shaped from the first frame and only reallocated if the
// frame size or type changes. The zero value is ready to use.
type Normalizer struct {
	buf   gocv.Mat
	size  image.Point
	typ   gocv.MatType
	ready bool

	reshapes int
}

// Normalize returns the working buffer holding frame in top-down row order.
// The returned Mat is owned by the Normalizer and overwritten on the next call.
func (n *Normalizer) Normalize(frame gocv.Mat, bottomUp bool) gocv.Mat {
	n.ensure(frame)

	if bottomUp {
		gocv.Flip(frame, &n.buf, 0)
	} else {
		frame.CopyTo(&n.buf)
	}
	return n.buf
}

func (n *Normalizer) ensure(frame gocv.Mat) {
	size := image.Pt(frame.Cols(), frame.Rows())
	if n.ready && n.size == size && n.typ == frame.Type() {
		return
	}
	n.Close()

	n.buf = gocv.NewMatWithSize(size.Y, size.X, frame.Type())
	n.size = size
	n.typ = frame.Type()
	n.ready = true
	n.reshapes++

	log.Debug("camera buffer shaped", "width", size.X, "height", size.Y, "channels", frame.Channels())
}

// Close releases the working buffer.
func (n *Normalizer) Close() error {
	if !n.ready {
		return nil
	}
	n.ready = false
	return n.buf.Close()
}
