// facedetect - cascade face detection on a camera feed or a still image
//
// Outlines every face found in the frame and shows the result in a window.
// Press any key in the window to quit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Version is the application version.
const Version = "0.1.0"

func main() {
	// Ctrl+C and SIGTERM end either mode between key polls
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(defaultApp())
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
