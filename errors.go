package facedetect

import "errors"

var (
	ErrInputImageMissing = errors.New("imagen de entrada no encontrada")
	ErrModelFilesMissing = errors.New("archivos del modelo no encontrados")
	ErrMalformedInput    = errors.New("entrada inválida")
	ErrNoDetector        = errors.New("detector requerido")
)
