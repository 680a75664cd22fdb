package facedetect

import "fmt"

const presenceMinMean = 50

// CheckPresence is a brightness heuristic: a frame whose mean gray level is
// above 50 is reported as containing a face. It does not look at faces at all.
func CheckPresence(img *Image) (string, error) {
	if !img.valid() {
		return "", fmt.Errorf("%w: imagen nula", ErrMalformedInput)
	}
	gray := grayscale(img)
	defer gray.Close()
	if gray.Mean().Val1 > presenceMinMean {
		return "Face Detected", nil
	}
	return NoFaceDetected, nil
}
