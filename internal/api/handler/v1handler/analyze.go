package v1handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"veggieplan/pkg/controller"
	"veggieplan/pkg/domain"
	"veggieplan/pkg/serrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// UploadField is the multipart form field carrying the label image.
const UploadField = "file"

// EncodeAnalysis writes an IngredientAnalysis as JSON. Empty lists are
// written as [] rather than null.
func EncodeAnalysis(e *jx.Encoder, a *domain.IngredientAnalysis) {
	strs := func(values []string) {
		e.ArrStart()
		for _, v := range values {
			e.Str(v)
		}
		e.ArrEnd()
	}

	e.ObjStart()
	e.FieldStart("is_vegan")
	e.Bool(a.IsVegan)
	e.FieldStart("animal_ingredients")
	strs(a.AnimalIngredients)
	e.FieldStart("detected_text")
	strs(a.DetectedText)
	e.ObjEnd()
}

// readUpload returns the bytes of the uploaded file, bounded by the
// configured upload size, and records the upload in the access log.
func (h Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.deps.MaxUploadBytes)

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "upload exceeds %d bytes", tooLarge.Limit)
		}

		return nil, serrors.Wrap(serrors.ErrUnprocessable, err, "multipart field %q is required", UploadField)
	}
	defer func() {
		_ = file.Close()
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}

	controller.AnnotateAccessLog(r.Context(),
		zap.String("upload_name", header.Filename),
		zap.Int("upload_bytes", len(b)),
		zap.String("upload_type", mimetype.Detect(b).String()),
	)

	return b, nil
}

// AnalyzeIngredients reads the uploaded label image, runs it through the
// analyzer and writes the resulting IngredientAnalysis.
func (h Handler) AnalyzeIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	image, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	res, err := h.deps.Analyzer.Analyze(ctx, image)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	controller.AnnotateAccessLog(ctx,
		zap.Bool("is_vegan", res.IsVegan),
		zap.Int("animal_ingredients", len(res.AnimalIngredients)),
	)

	writeJSON(ctx, w, http.StatusOK, func(e *jx.Encoder) {
		EncodeAnalysis(e, res)
	})
}
