package facedetect

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

const FrontalFaceCascade = "haarcascade_frontalface_default.xml"

// CascadeDirs are the usual install locations of the OpenCV haarcascades data.
var CascadeDirs = []string{
	"opencv_models",
	"/usr/share/opencv4/haarcascades",
	"/usr/local/share/opencv4/haarcascades",
	"/opt/homebrew/share/opencv4/haarcascades",
	"/usr/share/opencv/haarcascades",
}

type HaarParams struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      int
}

func DefaultHaarParams() HaarParams {
	return HaarParams{
		ScaleFactor:  1.5,
		MinNeighbors: 4,
		MinSize:      50,
	}
}

// Box is a detected face region in pixel coordinates.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type HaarDetector struct {
	modelPath string
	params    HaarParams
	mu        sync.Mutex
	cls       *gocv.CascadeClassifier
}

// NewHaarDetector records the cascade to use. The file is resolved with
// ResolveCascade and loaded on the first Detect call.
func NewHaarDetector(modelPath string, params *HaarParams) (*HaarDetector, error) {
	if modelPath == "" {
		slog.Error("ruta de modelo vacía")
		return nil, errors.New("modelo requerido")
	}
	if params == nil {
		def := DefaultHaarParams()
		params = &def
	}
	return &HaarDetector{modelPath: modelPath, params: *params}, nil
}

func (d *HaarDetector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cls != nil {
		d.cls.Close()
		d.cls = nil
	}
}

// Detect returns the faces found in img, possibly none.
func (d *HaarDetector) Detect(img *Image) ([]Box, error) {
	if !img.valid() {
		return nil, fmt.Errorf("%w: imagen nula", ErrMalformedInput)
	}
	gray := grayscale(img)
	defer gray.Close()

	minSize := image.Pt(d.params.MinSize, d.params.MinSize)
	d.mu.Lock()
	if err := d.load(); err != nil {
		d.mu.Unlock()
		return nil, err
	}
	rects := d.cls.DetectMultiScaleWithParams(gray, d.params.ScaleFactor, d.params.MinNeighbors, 0, minSize, image.Point{})
	d.mu.Unlock()

	return toBoxes(rects, img.Cols(), img.Rows(), d.params.MinSize), nil
}

func (d *HaarDetector) load() error {
	if d.cls != nil {
		return nil
	}
	path, err := ResolveCascade(d.modelPath)
	if err != nil {
		slog.Error("haarcascade no encontrado", "path", d.modelPath)
		return err
	}
	cls := gocv.NewCascadeClassifier()
	if !cls.Load(path) {
		cls.Close()
		slog.Error("no se pudo cargar haarcascade", "path", path)
		return fmt.Errorf("%w: carga de haarcascade falló: %s", ErrModelFilesMissing, path)
	}
	d.cls = &cls
	return nil
}

// toBoxes clips rects to the W x H frame and drops anything below minSize.
func toBoxes(rects []image.Rectangle, W, H, minSize int) []Box {
	boxes := make([]Box, 0, len(rects))
	for _, r := range rects {
		x1 := clamp(r.Min.X, 0, W)
		y1 := clamp(r.Min.Y, 0, H)
		x2 := clamp(r.Max.X, 0, W)
		y2 := clamp(r.Max.Y, 0, H)
		if x2-x1 < minSize || y2-y1 < minSize {
			continue
		}
		boxes = append(boxes, Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1})
	}
	return boxes
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ResolveCascade returns name itself when it points to an existing file,
// otherwise the first dirs entry (or CascadeDirs when dirs is empty)
// containing the file base name.
func ResolveCascade(name string, dirs ...string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	if len(dirs) == 0 {
		dirs = CascadeDirs
	}
	base := filepath.Base(name)
	for _, dir := range dirs {
		candidate := filepath.Join(dir, base)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrModelFilesMissing, name)
}
