// Package still decodes single images into frames.
package still

import (
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// ErrDecode means the image could not be opened or decoded.
var ErrDecode = errors.New("cannot decode image")

// Load decodes the image at path into a BGR frame, applying any EXIF
// orientation first. The caller must Close the returned Mat.
func Load(path string) (gocv.Mat, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w %s: %v", ErrDecode, path, err)
	}

	frame, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert %s: %w", path, err)
	}
	if frame.Empty() {
		frame.Close()
		return gocv.NewMat(), fmt.Errorf("%w %s: empty image", ErrDecode, path)
	}
	return frame, nil
}
