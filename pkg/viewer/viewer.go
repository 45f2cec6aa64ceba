// Package viewer shows annotated frames in a desktop window.
package viewer

import "gocv.io/x/gocv"

// Title is the name of the result window.
const Title = "result"

// Display is a surface that shows frames and reports key presses.
type Display interface {
	IMShow(img gocv.Mat)
	// WaitKey waits up to delay ms for a key; 0 waits forever.
	// Returns -1 when no key was pressed.
	WaitKey(delay int) int
	Close() error
}

// Window is a HighGUI window.
type Window struct {
	w *gocv.Window
}

// Open creates an auto-sized window with the given title.
func Open(title string) *Window {
	w := gocv.NewWindow(title)
	w.SetWindowProperty(gocv.WindowPropertyAutosize, gocv.WindowAutosize)
	return &Window{w: w}
}

// IMShow draws img in the window.
func (w *Window) IMShow(img gocv.Mat) {
	w.w.IMShow(img)
}

// WaitKey pumps window events for up to delay ms.
func (w *Window) WaitKey(delay int) int {
	return w.w.WaitKey(delay)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.w.Close()
}
