package facedetect

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Image is an 8-bit pixel buffer with one (gray) or three (BGR) channels.
// It owns the underlying Mat; call Close when done.
type Image struct {
	mat gocv.Mat
}

// NewImage takes ownership of m after checking its shape and element type.
// On error m is left untouched and the caller still owns it.
func NewImage(m gocv.Mat) (*Image, error) {
	if m.Empty() {
		return nil, fmt.Errorf("%w: matriz vacía", ErrMalformedInput)
	}
	if m.Rows() <= 0 || m.Cols() <= 0 {
		return nil, fmt.Errorf("%w: dimensiones inválidas %dx%d", ErrMalformedInput, m.Cols(), m.Rows())
	}
	switch m.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3:
	default:
		return nil, fmt.Errorf("%w: tipo de matriz no soportado %v (%d canales)", ErrMalformedInput, m.Type(), m.Channels())
	}
	return &Image{mat: m}, nil
}

func (i *Image) Rows() int     { return i.mat.Rows() }
func (i *Image) Cols() int     { return i.mat.Cols() }
func (i *Image) Channels() int { return i.mat.Channels() }

// Mat exposes the wrapped matrix. It stays owned by the Image.
func (i *Image) Mat() gocv.Mat { return i.mat }

func (i *Image) Close() error {
	if i == nil {
		return nil
	}
	return i.mat.Close()
}

func (i *Image) valid() bool {
	return i != nil && !i.mat.Empty()
}
