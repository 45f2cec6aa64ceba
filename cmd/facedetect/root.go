package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/teslashibe/facedetect/internal/config"
	"github.com/teslashibe/facedetect/internal/log"
	"github.com/teslashibe/facedetect/pkg/camera"
	"github.com/teslashibe/facedetect/pkg/detection"
	"github.com/teslashibe/facedetect/pkg/runner"
	"github.com/teslashibe/facedetect/pkg/still"
	"github.com/teslashibe/facedetect/pkg/viewer"
	"gocv.io/x/gocv"
)

// Options holds the parsed command line.
type Options struct {
	Cascade  string
	File     string
	Preset   string
	Flip     bool
	LogLevel string
}

// app holds the constructors for everything that touches hardware, so the
// startup order can be exercised without a camera or a screen.
type app struct {
	loadClassifier func(path string) (detection.Classifier, error)
	loadImage      func(path string) (gocv.Mat, error)
	openCamera     func(cfg camera.Config) (camera.Source, error)
	openDisplay    func(title string) viewer.Display
}

func defaultApp() app {
	return app{
		loadClassifier: detection.LoadClassifier,
		loadImage:      still.Load,
		openCamera: func(cfg camera.Config) (camera.Source, error) {
			dev, err := camera.Open(cfg)
			if err != nil {
				return nil, err
			}
			return dev, nil
		},
		openDisplay: func(title string) viewer.Display {
			return viewer.Open(title)
		},
	}
}

func newRootCmd(a app) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "facedetect [flags] [camera_index]",
		Short: "Detect faces in a camera feed or an image with a cascade classifier",
		Long: `facedetect finds faces with a pre-trained cascade and outlines them
in a window titled "result".

Without --file it reads from the camera (index 0 unless given) until the
stream ends or a key is pressed in the window. With --file it shows one
annotated image and waits for a key.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Init(opts.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), opts, args)
		},
	}

	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := cmd.Flags()
	flags.StringVarP(&opts.Cascade, "cascade", "c", config.CascadePath(), "Haar cascade (.xml) or pigo cascade file")
	flags.StringVarP(&opts.File, "file", "f", "", "Image file; runs on this image instead of the camera")
	flags.StringVar(&opts.Preset, "preset", camera.PresetDefault,
		"Camera resolution preset ("+strings.Join(camera.PresetNames(), ", ")+")")
	flags.BoolVar(&opts.Flip, "flip", false, "Camera delivers frames bottom-up; flip them vertically")
	flags.StringVar(&opts.LogLevel, "log-level", config.LogLevel(), "Log level: debug, info, warn, error")

	return cmd
}

// parseCameraIndex reads the optional positional camera index.
// A missing argument means camera 0; anything but a non-negative integer
// is rejected rather than silently mapped to 0.
func parseCameraIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid camera index %q: must be a non-negative integer", args[0])
	}
	return idx, nil
}

// cameraConfig builds the capture config from the preset and flags.
func cameraConfig(opts Options, index int) (camera.Config, error) {
	preset := camera.GetPreset(opts.Preset)
	if preset == nil {
		return camera.Config{}, fmt.Errorf("unknown preset %q (available: %s)",
			opts.Preset, strings.Join(camera.PresetNames(), ", "))
	}

	cfg := *preset
	cfg.Device = index
	cfg.FlipVertical = opts.Flip
	if errs := cfg.Validate(); len(errs) > 0 {
		return camera.Config{}, fmt.Errorf("camera config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (a app) run(ctx context.Context, opts Options, args []string) error {
	logger := log.Scope("run", uuid.NewString())

	// Validate the whole command line before touching any device.
	var camCfg camera.Config
	if opts.File == "" {
		index, err := parseCameraIndex(args)
		if err != nil {
			return err
		}
		if camCfg, err = cameraConfig(opts, index); err != nil {
			return err
		}
	} else if len(args) > 0 {
		logger.Warn("camera index ignored in image mode", "arg", args[0])
	}

	// The classifier must load before any window exists.
	classifier, err := a.loadClassifier(opts.Cascade)
	if err != nil {
		return fmt.Errorf("load classifier: %w", err)
	}
	defer classifier.Close()

	annotator := detection.NewAnnotator(classifier, detection.DefaultParams())
	defer annotator.Close()

	params := annotator.Params()
	logger.Info("classifier loaded",
		"path", opts.Cascade,
		"image_scale", params.ImageScale,
		"scale_factor", params.ScaleFactor,
		"min_neighbors", params.MinNeighbors,
	)

	if opts.File != "" {
		return a.runStill(ctx, opts.File, annotator)
	}
	return a.runCamera(ctx, camCfg, annotator)
}

func (a app) runStill(ctx context.Context, path string, annotator *detection.Annotator) error {
	frame, err := a.loadImage(path)
	if err != nil {
		frame.Close()
		return fmt.Errorf("load image: %w", err)
	}
	defer frame.Close()

	display := a.openDisplay(viewer.Title)
	defer display.Close()

	poll := camera.DefaultConfig()
	runner.Still(ctx, frame, annotator, display, poll.PollDelay())
	return nil
}

func (a app) runCamera(ctx context.Context, cfg camera.Config, annotator *detection.Annotator) error {
	src, err := a.openCamera(cfg)
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer src.Close()

	display := a.openDisplay(viewer.Title)
	defer display.Close()

	runner.Camera(ctx, src, annotator, display, cfg.PollDelay())
	return nil
}
