package main

import (
	"errors"
	"io"
	"net/http"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/user0608/facedetect"
	"github.com/user0608/goones/answer"
	"github.com/user0608/goones/errs"
)

var acceptedTypes = []string{"image/png", "image/jpeg"}

func NewDetectHandle(opts facedetect.Options) echo.HandlerFunc {
	logger := facedetect.NewLogger(opts)
	return func(c echo.Context) error {
		content, err := io.ReadAll(c.Request().Body)
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return answer.Err(c, errs.BadRequestDirect("la foto enviada está incompleta o dañada"))
			}
			return answer.Err(c, errs.InternalErrorDirect("no se pudo leer el cuerpo de la solicitud"))
		}
		if len(content) == 0 {
			return answer.Err(c, errs.BadRequestDirect("la foto enviada en la solicitud está vacía"))
		}
		mime := mimetype.Detect(content)
		if !slices.Contains(acceptedTypes, mime.String()) {
			return answer.Err(c, errs.BadRequestDirect("solo se aceptan imágenes en formato PNG o JPG"))
		}

		haarParams := opts.HaarParams()
		haar, err := facedetect.NewHaarDetector(opts.CascadePath, &haarParams)
		if err != nil {
			return answer.Err(c, errs.InternalErrorDirect("carga de haarcascade falló"))
		}
		defer haar.Close()

		dnnParams := opts.DNNParams()
		dnn := facedetect.NewDNNDetector(&dnnParams)
		defer dnn.Close()

		p, err := facedetect.New(haar, dnn, logger)
		if err != nil {
			return answer.Err(c, err)
		}

		report, err := p.RunBytes(c.Request().Context(), content)
		if err != nil {
			logger.Error("detectar", "err", err)
			switch {
			case errors.Is(err, facedetect.ErrMalformedInput):
				return answer.Err(c, errs.BadRequestDirect("la foto enviada no se pudo decodificar"))
			case errors.Is(err, facedetect.ErrModelFilesMissing):
				return answer.Err(c, errs.InternalErrorDirect("modelo no disponible"))
			}
			return answer.Err(c, errs.InternalErrorDirect("no se pudo procesar la imagen"))
		}
		return c.JSON(http.StatusOK, report)
	}
}
