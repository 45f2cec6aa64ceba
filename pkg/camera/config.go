// Package camera opens capture devices and normalizes the frames they deliver.
package camera

import "time"

// Config holds all camera configuration parameters.
type Config struct {
	// Device is the capture device index (0 = first camera).
	Device int `json:"device"`

	// Requested resolution. Zero keeps whatever the device defaults to.
	Width  int `json:"width"`
	Height int `json:"height"`

	// FlipVertical marks a device that delivers rows bottom-up.
	FlipVertical bool `json:"flip_vertical"`

	// PollInterval is how long each loop iteration waits for a key press.
	PollInterval time.Duration `json:"poll_interval"`
}

// Resolution limits accepted by Validate.
const (
	MaxWidth  = 7680
	MaxHeight = 4320

	DefaultPollInterval = 10 * time.Millisecond
)

// DefaultConfig returns the first camera at its native resolution.
func DefaultConfig() Config {
	return Config{
		Device:       0,
		Width:        0, // Device default
		Height:       0,
		FlipVertical: false,
		PollInterval: DefaultPollInterval,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Device < 0 {
		errors = append(errors, "device index must be >= 0")
	}

	// Resolution is either fully unset or fully set
	if (c.Width == 0) != (c.Height == 0) {
		errors = append(errors, "width and height must be set together")
	}
	if c.Width < 0 || c.Width > MaxWidth {
		errors = append(errors, "width must be between 0 and 7680")
	}
	if c.Height < 0 || c.Height > MaxHeight {
		errors = append(errors, "height must be between 0 and 4320")
	}

	if c.PollInterval < time.Millisecond {
		errors = append(errors, "poll interval must be at least 1ms")
	}

	return errors
}

// PollDelay returns the poll interval in whole milliseconds, at least 1.
// A zero delay would block the window until a key is pressed.
func (c *Config) PollDelay() int {
	ms := int(c.PollInterval / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}
