package facedetect

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Preprocess returns a new three channel image holding the histogram
// equalized grayscale version of src. All three channels are identical.
func Preprocess(src *Image) (*Image, error) {
	if !src.valid() {
		return nil, fmt.Errorf("%w: imagen nula", ErrMalformedInput)
	}

	gray := grayscale(src)
	defer gray.Close()

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(gray, &equalized)

	out := gocv.NewMat()
	gocv.CvtColor(equalized, &out, gocv.ColorGrayToBGR)
	img, err := NewImage(out)
	if err != nil {
		out.Close()
		return nil, err
	}
	return img, nil
}

// grayscale returns a new single channel copy of img. The caller closes it.
func grayscale(img *Image) gocv.Mat {
	gray := gocv.NewMat()
	if img.Channels() == 1 {
		img.mat.CopyTo(&gray)
		return gray
	}
	gocv.CvtColor(img.mat, &gray, gocv.ColorBGRToGray)
	return gray
}
