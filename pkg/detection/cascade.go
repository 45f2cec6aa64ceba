package detection

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

var (
	// ErrCascadeNotFound means the classifier file does not exist.
	ErrCascadeNotFound = errors.New("cascade file not found")
	// ErrCascadeInvalid means the file exists but could not be loaded.
	ErrCascadeInvalid = errors.New("invalid cascade file")
)

// LoadClassifier loads a cascade once for the whole run.
// OpenCV Haar cascades (.xml) load through gocv; any other file is read as
// a pigo binary cascade.
func LoadClassifier(path string) (Classifier, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCascadeNotFound, path)
		}
		return nil, fmt.Errorf("stat cascade %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrCascadeInvalid, path)
	}

	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return loadHaar(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade %s: %w", path, err)
	}
	return newPigoClassifier(data)
}

// haarHeadLimit bounds how much of an .xml file is scanned for the storage
// root. Stock cascades put a licence comment before it.
const haarHeadLimit = 64 << 10

var haarStorageTag = []byte("<opencv_storage>")

// checkHaarHeader rejects files OpenCV's XML reader would abort on.
func checkHaarHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cascade %s: %w", path, err)
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, haarHeadLimit))
	if err != nil {
		return fmt.Errorf("read cascade %s: %w", path, err)
	}
	if len(bytes.TrimSpace(head)) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrCascadeInvalid, path)
	}
	if !bytes.Contains(head, haarStorageTag) {
		return fmt.Errorf("%w: %s has no %s root", ErrCascadeInvalid, path, haarStorageTag)
	}
	return nil
}

func loadHaar(path string) (Classifier, error) {
	if err := checkHaarHeader(path); err != nil {
		return nil, err
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeInvalid, path)
	}
	return &classifier, nil
}
