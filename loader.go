package facedetect

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// LoadImage reads path and decodes it as a BGR image. Any path that cannot
// be stat'ed as a regular file yields ErrInputImageMissing.
func LoadImage(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputImageMissing, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s es un directorio", ErrInputImageMissing, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeImage(content)
}

// DecodeImage decodes any in-memory format OpenCV understands.
func DecodeImage(content []byte) (*Image, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: imagen vacía", ErrMalformedInput)
	}
	mat, err := gocv.IMDecode(content, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	img, err := NewImage(mat)
	if err != nil {
		mat.Close()
		return nil, fmt.Errorf("%w: decode vacío", err)
	}
	return img, nil
}
