package facedetect

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// writeSolidPNG saves a width x height image filled with c and returns its path.
func writeSolidPNG(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solid.png")
	require.NoError(t, imaging.Save(imaging.New(width, height, c), path))
	return path
}

func solidImage(t *testing.T, rows, cols int, b, g, r float64) *Image {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), rows, cols, gocv.MatTypeCV8UC3)
	img, err := NewImage(mat)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })
	return img
}
