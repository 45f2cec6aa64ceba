// Package runner drives frames from a source through the annotate step
// and onto a display.
package runner

import (
	"context"
	"image"
	"time"

	"github.com/teslashibe/facedetect/internal/log"
	"github.com/teslashibe/facedetect/pkg/camera"
	"github.com/teslashibe/facedetect/pkg/detection"
	"github.com/teslashibe/facedetect/pkg/viewer"
	"gocv.io/x/gocv"
)

// StopReason says why a still or camera run ended.
type StopReason int

const (
	StopEndOfStream StopReason = iota // Source had no more frames
	StopKeyPressed                    // User pressed a key in the window
	StopCancelled                     // Context was cancelled (Ctrl+C)
)

func (r StopReason) String() string {
	switch r {
	case StopEndOfStream:
		return "end_of_stream"
	case StopKeyPressed:
		return "key_pressed"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// StillResult describes the single annotated image.
type StillResult struct {
	Size   image.Point
	Faces  []image.Rectangle
	Reason StopReason
}

// Still annotates one frame, shows it and waits until a key is pressed or
// ctx is cancelled. pollDelay is the key wait per check in milliseconds.
func Still(ctx context.Context, frame gocv.Mat, a *detection.Annotator, d viewer.Display, pollDelay int) StillResult {
	if pollDelay < 1 {
		pollDelay = 1
	}

	out, faces := a.Annotate(frame)
	defer out.Close()

	log.Info("image annotated", "width", out.Cols(), "height", out.Rows(), "faces", len(faces))

	d.IMShow(out)

	res := StillResult{
		Size:  image.Pt(out.Cols(), out.Rows()),
		Faces: faces,
	}
	for {
		select {
		case <-ctx.Done():
			res.Reason = StopCancelled
			return res
		default:
		}

		if d.WaitKey(pollDelay) >= 0 {
			res.Reason = StopKeyPressed
			return res
		}
	}
}

// CameraStats summarizes a camera run.
type CameraStats struct {
	Frames  int
	Faces   int
	Elapsed time.Duration
	Reason  StopReason
}

// FPS returns the average loop rate.
func (s CameraStats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Camera pulls frames from src until the stream ends, a key is pressed or
// ctx is cancelled. pollDelay is the per-frame key wait in milliseconds.
// src and d stay owned by the caller; the loop's own buffers are released
// on every exit path.
func Camera(ctx context.Context, src camera.Source, a *detection.Annotator, d viewer.Display, pollDelay int) CameraStats {
	if pollDelay < 1 {
		pollDelay = 1
	}

	frame := gocv.NewMat()
	defer frame.Close()

	var norm camera.Normalizer
	defer norm.Close()

	stats := CameraStats{}
	start := time.Now()

	finish := func(reason StopReason) CameraStats {
		stats.Reason = reason
		stats.Elapsed = time.Since(start)
		log.Info("camera loop stopped",
			"reason", reason.String(),
			"frames", stats.Frames,
			"faces", stats.Faces,
			"fps", stats.FPS(),
		)
		return stats
	}

	for {
		select {
		case <-ctx.Done():
			return finish(StopCancelled)
		default:
		}

		if ok := src.Read(&frame); !ok || frame.Empty() {
			return finish(StopEndOfStream)
		}

		working := norm.Normalize(frame, camera.IsBottomUp(src))
		out, faces := a.Annotate(working)
		d.IMShow(out)
		out.Close()

		stats.Frames++
		stats.Faces += len(faces)

		if d.WaitKey(pollDelay) >= 0 {
			return finish(StopKeyPressed)
		}
	}
}
