package camera

import (
	"errors"
	"fmt"

	"github.com/teslashibe/facedetect/internal/log"
	"gocv.io/x/gocv"
)

// ErrOpen means the capture device could not be opened.
var ErrOpen = errors.New("cannot open camera")

// Source is a sequential frame supplier. Read returns false once the
// stream has ended or the device went away.
type Source interface {
	Read(frame *gocv.Mat) bool
	Close() error
}

// orientation is implemented by sources that know their row order.
type orientation interface {
	BottomUp() bool
}

// IsBottomUp reports whether src delivers rows bottom-up.
// Sources that don't say are assumed top-down.
func IsBottomUp(src Source) bool {
	if o, ok := src.(orientation); ok {
		return o.BottomUp()
	}
	return false
}

// Device is an opened capture device.
type Device struct {
	capture  *gocv.VideoCapture
	index    int
	bottomUp bool
}

// Open acquires the capture device described by cfg.
func Open(cfg Config) (*Device, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("camera config: %v", errs)
	}

	capture, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("%w %d: %v", ErrOpen, cfg.Device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w %d", ErrOpen, cfg.Device)
	}

	if cfg.Width > 0 && cfg.Height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}

	dev := &Device{
		capture:  capture,
		index:    cfg.Device,
		bottomUp: cfg.FlipVertical,
	}
	log.Info("camera opened", "device", dev.Index(), "width", cfg.Width, "height", cfg.Height, "flip", dev.BottomUp())
	return dev, nil
}

// Read pulls the next frame into frame.
func (d *Device) Read(frame *gocv.Mat) bool {
	return d.capture.Read(frame)
}

// BottomUp reports whether frames from this device need a vertical flip.
func (d *Device) BottomUp() bool {
	return d.bottomUp
}

// Index returns the device index.
func (d *Device) Index() int {
	return d.index
}

// Close releases the device.
func (d *Device) Close() error {
	return d.capture.Close()
}
