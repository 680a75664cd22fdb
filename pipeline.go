package facedetect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// FaceDetector locates candidate faces (the Haar stage).
type FaceDetector interface {
	Detect(img *Image) ([]Box, error)
}

// FaceVerifier runs full frame detection (the DNN stage).
type FaceVerifier interface {
	Detect(img *Image) (Result, error)
}

type Report struct {
	RunID      string `json:"run_id"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Faces      []Box  `json:"faces"`
	DNNInvoked bool   `json:"dnn_invoked"`
	Result     string `json:"result"`
	Presence   string `json:"presence"`
}

type Pipeline struct {
	faces  FaceDetector
	verify FaceVerifier
	log    *slog.Logger
}

func New(faces FaceDetector, verify FaceVerifier, logger *slog.Logger) (*Pipeline, error) {
	if faces == nil || verify == nil {
		return nil, ErrNoDetector
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{faces: faces, verify: verify, log: logger}, nil
}

func (p *Pipeline) RunFile(ctx context.Context, path string) (*Report, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	return p.Run(ctx, img)
}

func (p *Pipeline) RunBytes(ctx context.Context, content []byte) (*Report, error) {
	img, err := DecodeImage(content)
	if err != nil {
		return nil, err
	}
	defer img.Close()
	return p.Run(ctx, img)
}

// Run preprocesses img, counts faces and, only when there is at least one,
// asks the verifier for its result. The verifier looks at the whole frame,
// not at the boxes found before it.
func (p *Pipeline) Run(ctx context.Context, img *Image) (*Report, error) {
	log, id := WithRun(p.log)

	processed, err := Preprocess(img)
	if err != nil {
		return nil, err
	}
	defer processed.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	faces, err := p.faces.Detect(processed)
	if err != nil {
		return nil, fmt.Errorf("haar: %w", err)
	}
	log.Debug("haar", "rostros", len(faces))

	report := &Report{
		RunID:  id,
		Width:  img.Cols(),
		Height: img.Rows(),
		Faces:  faces,
		Result: NoFaceDetected,
	}

	if len(faces) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := p.verify.Detect(processed)
		if err != nil {
			return nil, fmt.Errorf("dnn: %w", err)
		}
		report.DNNInvoked = true
		report.Result = res.String()
	}

	if report.Presence, err = CheckPresence(img); err != nil {
		return nil, err
	}
	log.Debug("resultado", "dnn", report.DNNInvoked, "result", report.Result, "presence", report.Presence)
	return report, nil
}

// Execute is the command line flow: banner, run, three result lines.
// A missing input image is reported on w and is not an error.
func Execute(ctx context.Context, w io.Writer, p *Pipeline, path string) error {
	fmt.Fprintln(w, "Starting ML processing...")
	report, err := p.RunFile(ctx, path)
	if errors.Is(err, ErrInputImageMissing) {
		fmt.Fprintf(w, "Image not found: %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	WriteReport(w, report)
	return nil
}

func WriteReport(w io.Writer, r *Report) {
	fmt.Fprintln(w, "Faces detected:", len(r.Faces))
	fmt.Fprintln(w, "DNN Model Result:", r.Result)
	fmt.Fprintln(w, "Recognition Result:", r.Result)
}
