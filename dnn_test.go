package facedetect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

type countingDetections struct {
	Confidences
	reads []int
}

func (c *countingDetections) Confidence(i int) float32 {
	c.reads = append(c.reads, i)
	return c.Confidences[i]
}

func TestFirstAboveThreshold_FirstMatch(t *testing.T) {
	d := &countingDetections{Confidences: Confidences{0.2, 0.6, 0.9}}

	res := FirstAboveThreshold(d, 0.5)

	assert.True(t, res.Detected)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, float32(0.6), res.Confidence)
	assert.Equal(t, []int{0, 1}, d.reads)
	assert.Equal(t, "Face Detected with 60.00% confidence", res.String())
}

func TestFirstAboveThreshold_SSDBlob(t *testing.T) {
	blob := gocv.NewMatWithSizes([]int{1, 1, 3, 7}, gocv.MatTypeCV32FC1)
	defer blob.Close()
	data, err := blob.DataPtrFloat32()
	require.NoError(t, err)
	require.Len(t, data, 21)

	// image id, class, score, x1, y1, x2, y2
	rows := [][7]float32{
		{0, 0.95, 0.2, 0.95, 0.1, 0.5, 0.5},
		{0, 1, 0.6, 0.75, 0.2, 0.6, 0.6},
		{0, 1, 0.9, 0.1, 0.3, 0.7, 0.7},
	}
	for i, row := range rows {
		copy(data[i*7:], row[:])
	}

	plane := gocv.GetBlobChannel(blob, 0, 0)
	defer plane.Close()
	require.Equal(t, 3, plane.Rows())

	res := FirstAboveThreshold(ssdDetections{mat: plane}, 0.5)

	assert.True(t, res.Detected)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, float32(0.6), res.Confidence)
}

func TestFirstAboveThreshold_NoneAbove(t *testing.T) {
	res := FirstAboveThreshold(Confidences{0.1, 0.3, 0.5}, 0.5)

	assert.False(t, res.Detected)
	assert.Equal(t, NoFaceDetected, res.String())
}

func TestFirstAboveThreshold_Empty(t *testing.T) {
	res := FirstAboveThreshold(Confidences{}, 0.5)
	assert.Equal(t, NoFaceDetected, res.String())
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "Face Detected with 87.50% confidence", Result{Detected: true, Confidence: 0.875}.String())
	assert.Equal(t, "No Face Detected", Result{}.String())
}

func TestDefaultDNNParams(t *testing.T) {
	p := DefaultDNNParams()
	assert.Equal(t, 300, p.InputSize)
	assert.Equal(t, [3]float64{104.0, 177.0, 123.0}, p.Mean)
	assert.Equal(t, float32(0.5), p.ConfidenceThreshold)
	assert.False(t, p.SwapRB)
}

func TestDNNDetector_MissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	prototxt := filepath.Join(dir, "deploy.prototxt")
	require.NoError(t, os.WriteFile(prototxt, []byte("name: \"x\""), 0o644))

	tests := []struct {
		name   string
		params DNNParams
	}{
		{"both missing", DNNParams{PrototxtPath: filepath.Join(dir, "a"), WeightsPath: filepath.Join(dir, "b")}},
		{"weights missing", DNNParams{PrototxtPath: prototxt, WeightsPath: filepath.Join(dir, "b")}},
		{"prototxt is a dir", DNNParams{PrototxtPath: dir, WeightsPath: prototxt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDNNDetector(&tt.params)
			defer d.Close()

			// nil image: the artifact check must fail before the input is looked at
			_, err := d.Detect(nil)
			assert.ErrorIs(t, err, ErrModelFilesMissing)
			assert.Nil(t, d.net)
		})
	}
}
