package facedetect

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

const NoFaceDetected = "No Face Detected"

type DNNParams struct {
	PrototxtPath        string
	WeightsPath         string
	InputSize           int
	ScaleFactor         float64
	Mean                [3]float64
	SwapRB              bool
	ConfidenceThreshold float32
}

func DefaultDNNParams() DNNParams {
	return DNNParams{
		PrototxtPath:        "models/deploy.prototxt",
		WeightsPath:         "models/res10_300x300_ssd_iter_140000.caffemodel",
		InputSize:           300,
		ScaleFactor:         1.0,
		Mean:                [3]float64{104.0, 177.0, 123.0},
		ConfidenceThreshold: 0.5,
	}
}

// Detections is the candidate list produced by the SSD head.
type Detections interface {
	Len() int
	Confidence(i int) float32
}

// Confidences is a Detections backed by plain scores.
type Confidences []float32

func (c Confidences) Len() int                 { return len(c) }
func (c Confidences) Confidence(i int) float32 { return c[i] }

// ssdDetections reads the N x 7 plane of a [1, 1, N, 7] output blob.
// Column 2 holds the score.
type ssdDetections struct {
	mat gocv.Mat
}

func (s ssdDetections) Len() int                 { return s.mat.Rows() }
func (s ssdDetections) Confidence(i int) float32 { return s.mat.GetFloatAt(i, 2) }

type Result struct {
	Detected   bool    `json:"detected"`
	Index      int     `json:"index"`
	Confidence float32 `json:"confidence"`
}

func (r Result) String() string {
	if !r.Detected {
		return NoFaceDetected
	}
	return fmt.Sprintf("Face Detected with %.2f%% confidence", r.Confidence*100)
}

// FirstAboveThreshold scans d in index order and stops at the first score
// strictly greater than threshold. Later, higher scores are never looked at.
func FirstAboveThreshold(d Detections, threshold float32) Result {
	for i := 0; i < d.Len(); i++ {
		if c := d.Confidence(i); c > threshold {
			return Result{Detected: true, Index: i, Confidence: c}
		}
	}
	return Result{Index: -1}
}

type DNNDetector struct {
	params DNNParams
	mu     sync.Mutex
	net    *gocv.Net
}

func NewDNNDetector(params *DNNParams) *DNNDetector {
	if params == nil {
		def := DefaultDNNParams()
		params = &def
	}
	return &DNNDetector{params: *params}
}

func (d *DNNDetector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.net != nil {
		d.net.Close()
		d.net = nil
	}
}

// Detect runs one forward pass over img. Both model artifacts are checked
// before anything else; the network is read once and reused afterwards.
func (d *DNNDetector) Detect(img *Image) (Result, error) {
	if err := d.checkArtifacts(); err != nil {
		return Result{}, err
	}
	if !img.valid() {
		return Result{}, fmt.Errorf("%w: imagen nula", ErrMalformedInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.load(); err != nil {
		return Result{}, err
	}

	size := image.Pt(d.params.InputSize, d.params.InputSize)
	mean := gocv.NewScalar(d.params.Mean[0], d.params.Mean[1], d.params.Mean[2], 0)
	blob := gocv.BlobFromImage(img.mat, d.params.ScaleFactor, size, mean, d.params.SwapRB, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()
	if out.Empty() {
		return Result{}, fmt.Errorf("%w: salida de la red vacía", ErrMalformedInput)
	}

	plane := gocv.GetBlobChannel(out, 0, 0)
	defer plane.Close()

	res := FirstAboveThreshold(ssdDetections{mat: plane}, d.params.ConfidenceThreshold)
	slog.Debug("dnn", "candidatos", plane.Rows(), "detectado", res.Detected, "indice", res.Index, "confianza", res.Confidence)
	return res, nil
}

func (d *DNNDetector) checkArtifacts() error {
	for _, p := range []string{d.params.PrototxtPath, d.params.WeightsPath} {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			slog.Error("modelo dnn no encontrado", "path", p)
			return fmt.Errorf("%w: %s", ErrModelFilesMissing, p)
		}
	}
	return nil
}

func (d *DNNDetector) load() error {
	if d.net != nil {
		return nil
	}
	net := gocv.ReadNetFromCaffe(d.params.PrototxtPath, d.params.WeightsPath)
	if net.Empty() {
		net.Close()
		slog.Error("no se pudo cargar la red", "prototxt", d.params.PrototxtPath, "weights", d.params.WeightsPath)
		return fmt.Errorf("%w: red vacía", ErrModelFilesMissing)
	}
	d.net = &net
	return nil
}
