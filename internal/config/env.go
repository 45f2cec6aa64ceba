// Package config provides configuration helpers for facedetect commands.
package config

import "os"

// Defaults used when neither a flag nor an environment variable is set.
const (
	DefaultCascadePath = "cascades/haarcascade_frontalface_alt.xml"
	DefaultLogLevel    = "info"
)

// Environment variable names.
const (
	EnvCascade  = "FACEDETECT_CASCADE"
	EnvLogLevel = "FACEDETECT_LOG_LEVEL"
)

// CascadePath returns the classifier path from FACEDETECT_CASCADE.
// Falls back to DefaultCascadePath if not set.
func CascadePath() string {
	return envOr(EnvCascade, DefaultCascadePath)
}

// LogLevel returns the log level from FACEDETECT_LOG_LEVEL or the default.
func LogLevel() string {
	return envOr(EnvLogLevel, DefaultLogLevel)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
