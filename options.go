package facedetect

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const envPrefix = "FACEDETECT_"

type Options struct {
	ImagePath string `validate:"required"`

	CascadePath  string  `validate:"required"`
	ScaleFactor  float64 `validate:"gt=1"`
	MinNeighbors int     `validate:"gte=0"`
	MinFaceSize  int     `validate:"gt=0"`

	PrototxtPath        string  `validate:"required"`
	WeightsPath         string  `validate:"required"`
	InputSize           int     `validate:"gt=0"`
	ConfidenceThreshold float32 `validate:"gte=0,lt=1"`

	LogLevel string `validate:"oneof=debug info warn error"`
	LogFile  string
}

func DefaultOptions() Options {
	haar := DefaultHaarParams()
	dnn := DefaultDNNParams()
	return Options{
		ImagePath:           "sample.png",
		CascadePath:         FrontalFaceCascade,
		ScaleFactor:         haar.ScaleFactor,
		MinNeighbors:        haar.MinNeighbors,
		MinFaceSize:         haar.MinSize,
		PrototxtPath:        dnn.PrototxtPath,
		WeightsPath:         dnn.WeightsPath,
		InputSize:           dnn.InputSize,
		ConfidenceThreshold: dnn.ConfidenceThreshold,
		LogLevel:            "info",
	}
}

// LoadOptions starts from DefaultOptions, reads an optional .env file and
// applies FACEDETECT_* overrides from the environment.
func LoadOptions() (Options, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("no se pudo leer .env", "err", err)
	}
	opts := DefaultOptions()
	if err := opts.applyEnv(os.LookupEnv); err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("opciones inválidas: %w", err)
	}
	return nil
}

func (o Options) HaarParams() HaarParams {
	return HaarParams{
		ScaleFactor:  o.ScaleFactor,
		MinNeighbors: o.MinNeighbors,
		MinSize:      o.MinFaceSize,
	}
}

func (o Options) DNNParams() DNNParams {
	p := DefaultDNNParams()
	p.PrototxtPath = o.PrototxtPath
	p.WeightsPath = o.WeightsPath
	p.InputSize = o.InputSize
	p.ConfidenceThreshold = o.ConfidenceThreshold
	return p
}

func (o *Options) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("IMAGE", &o.ImagePath)
	str("CASCADE", &o.CascadePath)
	str("PROTOTXT", &o.PrototxtPath)
	str("WEIGHTS", &o.WeightsPath)
	str("LOG_LEVEL", &o.LogLevel)
	str("LOG_FILE", &o.LogFile)

	if v, ok := lookup(envPrefix + "SCALE_FACTOR"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sSCALE_FACTOR: %w", envPrefix, err)
		}
		o.ScaleFactor = f
	}
	ints := map[string]*int{
		"MIN_NEIGHBORS": &o.MinNeighbors,
		"MIN_FACE_SIZE": &o.MinFaceSize,
		"INPUT_SIZE":    &o.InputSize,
	}
	for key, dst := range ints {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}
	if v, ok := lookup(envPrefix + "CONFIDENCE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("%sCONFIDENCE: %w", envPrefix, err)
		}
		o.ConfidenceThreshold = float32(f)
	}
	return nil
}
