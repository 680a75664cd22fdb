package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/user0608/facedetect"
)

func main() {
	opts, err := facedetect.LoadOptions()
	if err != nil {
		slog.Error("opciones", "err", err)
		os.Exit(1)
	}
	logger := facedetect.NewLogger(opts)
	slog.SetDefault(logger)

	if err := run(context.Background(), os.Stdout, opts, logger); err != nil {
		logger.Error("procesar", "err", err)
		os.Exit(1)
	}
}

// run wires the detectors and executes one pass. Both detectors read their
// model files lazily, so a missing input image is reported before any of them.
func run(ctx context.Context, w io.Writer, opts facedetect.Options, logger *slog.Logger) error {
	haarParams := opts.HaarParams()
	haar, err := facedetect.NewHaarDetector(opts.CascadePath, &haarParams)
	if err != nil {
		return err
	}
	defer haar.Close()

	dnnParams := opts.DNNParams()
	dnn := facedetect.NewDNNDetector(&dnnParams)
	defer dnn.Close()

	p, err := facedetect.New(haar, dnn, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := facedetect.Execute(ctx, w, p, opts.ImagePath); err != nil {
		return err
	}
	logger.Debug("fin", "duration", fmt.Sprintf("%.3fs", time.Since(start).Seconds()))
	return nil
}
