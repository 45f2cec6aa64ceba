package camera

import (
	"image"
	"image/color"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Device != 0 {
		t.Errorf("Expected Device=0, got %d", cfg.Device)
	}
	if cfg.PollInterval != 10*time.Millisecond {
		t.Errorf("Expected PollInterval=10ms, got %v", cfg.PollInterval)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("DefaultConfig should be valid, got %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"negative device", func(c *Config) { c.Device = -1 }, true},
		{"width without height", func(c *Config) { c.Width = 640 }, true},
		{"too wide", func(c *Config) { c.Width, c.Height = 10000, 480 }, true},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }, true},
		{"second camera", func(c *Config) { c.Device = 1 }, false},
		{"vga", func(c *Config) { c.Width, c.Height = 640, 480 }, false},
		{"flipped", func(c *Config) { c.FlipVertical = true }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			errs := cfg.Validate()
			if tc.wantErr && len(errs) == 0 {
				t.Error("expected validation errors")
			}
			if !tc.wantErr && len(errs) != 0 {
				t.Errorf("unexpected validation errors: %v", errs)
			}
		})
	}
}

func TestConfig_PollDelay(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     int
	}{
		{10 * time.Millisecond, 10},
		{25 * time.Millisecond, 25},
		{500 * time.Microsecond, 1},
		{0, 1},
	}

	for _, tc := range tests {
		cfg := Config{PollInterval: tc.interval}
		if got := cfg.PollDelay(); got != tc.want {
			t.Errorf("PollDelay(%v) = %d, want %d", tc.interval, got, tc.want)
		}
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Errorf("preset %q listed but not found", name)
			continue
		}
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("preset %q invalid: %v", name, errs)
		}
	}

	if len(PresetNames()) != len(Presets()) {
		t.Errorf("PresetNames has %d entries, Presets has %d", len(PresetNames()), len(Presets()))
	}
	if GetPreset("8k") != nil {
		t.Error("unknown preset should return nil")
	}

	if hd := GetPreset(Preset720p); hd.Width != 1280 || hd.Height != 720 {
		t.Errorf("720p preset = %dx%d", hd.Width, hd.Height)
	}
}

type plainSource struct{}

func (plainSource) Read(*gocv.Mat) bool { return false }
func (plainSource) Close() error        { return nil }

type flippedSource struct{ plainSource }

func (flippedSource) BottomUp() bool { return true }

func TestIsBottomUp(t *testing.T) {
	if IsBottomUp(plainSource{}) {
		t.Error("source without orientation should be top-down")
	}
	if !IsBottomUp(flippedSource{}) {
		t.Error("flipped source should report bottom-up")
	}
	if !IsBottomUp(&Device{bottomUp: true}) {
		t.Error("device configured with FlipVertical should report bottom-up")
	}
}

func TestDevice_Index(t *testing.T) {
	d := &Device{index: 2}
	if d.Index() != 2 {
		t.Errorf("Index() = %d, want 2", d.Index())
	}
}

// stripedFrame paints the top row band white and the rest black.
func stripedFrame(cols, rows int) gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&m, image.Rect(0, 0, cols, 2), color.RGBA{R: 255, G: 255, B: 255}, -1)
	return m
}

func TestNormalizer_CopiesTopDown(t *testing.T) {
	frame := stripedFrame(8, 6)
	defer frame.Close()

	var n Normalizer
	defer n.Close()

	out := n.Normalize(frame, false)
	if out.GetVecbAt(0, 0)[0] != 255 || out.GetVecbAt(5, 0)[0] != 0 {
		t.Error("top-down frame should be copied unchanged")
	}
}

func TestNormalizer_FlipsBottomUp(t *testing.T) {
	frame := stripedFrame(8, 6)
	defer frame.Close()

	var n Normalizer
	defer n.Close()

	out := n.Normalize(frame, true)
	if out.GetVecbAt(0, 0)[0] != 0 || out.GetVecbAt(5, 0)[0] != 255 {
		t.Error("bottom-up frame should be flipped vertically")
	}
	if frame.GetVecbAt(0, 0)[0] != 255 {
		t.Error("source frame was modified")
	}
}

func TestNormalizer_ReusesBuffer(t *testing.T) {
	var n Normalizer
	defer n.Close()

	sizes := []image.Point{{8, 6}, {8, 6}, {8, 6}, {16, 12}, {16, 12}}
	for _, s := range sizes {
		frame := stripedFrame(s.X, s.Y)
		n.Normalize(frame, false)
		frame.Close()
	}

	if n.reshapes != 2 {
		t.Errorf("buffer shaped %d times, want 2", n.reshapes)
	}
	if n.size != image.Pt(16, 12) {
		t.Errorf("buffer size = %v, want 16x12", n.size)
	}
}

func TestNormalizer_CloseIdempotent(t *testing.T) {
	var n Normalizer
	if err := n.Close(); err != nil {
		t.Errorf("Close on unused normalizer: %v", err)
	}

	frame := stripedFrame(4, 4)
	defer frame.Close()
	n.Normalize(frame, false)

	if err := n.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
