// Package textsource defines the capability of turning label images into text
// fragments, plus the error kinds implementations report.
package textsource

import (
	"context"
	"veggieplan/pkg/serrors"
)

var (
	// ErrImageDecode indicates the uploaded bytes are not a readable image.
	ErrImageDecode = serrors.NewKind("IMAGE_DECODE_ERROR")
	// ErrRecognitionFailure indicates the recognition engine could not be
	// reached or failed while processing a valid image.
	ErrRecognitionFailure = serrors.NewKind("RECOGNITION_FAILURE")
)

// Recognizer extracts text from an image. Implementations return fragments in
// reading order, roughly one per detected line or word.
//
//go:generate mockgen -package mocktextsource -source=interface.go -destination=mock/mocktextsource.go *
type Recognizer interface {
	// Recognize returns the text fragments found in image. It fails with
	// ErrImageDecode when the image cannot be read and with
	// ErrRecognitionFailure when the engine is unavailable.
	Recognize(ctx context.Context, image []byte) ([]string, error)
}
