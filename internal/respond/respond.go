// Package respond writes the uniform {statusCode, success, ...} JSON
// envelope and maps core errors onto HTTP statuses at the boundary.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/biglittlethings/paperwork/internal/compose"
	"github.com/biglittlethings/paperwork/internal/compositor"
	"github.com/biglittlethings/paperwork/internal/format"
	"github.com/biglittlethings/paperwork/internal/mail"
	"github.com/biglittlethings/paperwork/internal/render"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes the success envelope with extra payload fields merged in.
func Success(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{
		"statusCode": status,
		"success":    true,
	}
	for k, v := range payload {
		body[k] = v
	}
	JSON(w, status, body)
}

// Fail writes the error envelope with a single message.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{
		"statusCode": status,
		"success":    false,
		"errors":     map[string]string{"message": msg},
	})
}

// FieldErrors writes a 422 envelope listing one {field: message} entry per
// failed field, the same shape the old validation middleware produced.
func FieldErrors(w http.ResponseWriter, fields []map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{
		"statusCode": http.StatusUnprocessableEntity,
		"success":    false,
		"errors":     fields,
	})
}

// Invalid converts a go-playground/validator error into the field-error
// envelope; anything else becomes a generic 422.
func Invalid(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]map[string]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, map[string]string{
				fe.Field(): "failed on the " + fe.Tag() + " rule",
			})
		}
		FieldErrors(w, fields)
		return
	}
	Fail(w, http.StatusUnprocessableEntity, err.Error())
}

// Error maps a core error onto the envelope: client input problems go to
// 4xx, rendering/delivery/internal problems to 5xx.
func Error(w http.ResponseWriter, err error, logger zerolog.Logger) {
	switch {
	case errors.Is(err, format.ErrFormat):
		logger.Warn().Err(err).Msg("unformattable request value")
		Fail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, compose.ErrArtifactTooSmall):
		logger.Error().Err(err).Msg("rendered artifact below size floor")
		Fail(w, http.StatusInternalServerError, "rendered document failed the size check")
	case errors.Is(err, compositor.ErrComposition):
		logger.Error().Err(err).Msg("image composition failed")
		Fail(w, http.StatusBadGateway, "failed to compose card front image")
	case errors.Is(err, render.ErrRender):
		logger.Error().Err(err).Msg("pdf rendering failed")
		Fail(w, http.StatusInternalServerError, "failed to render PDF")
	case errors.Is(err, mail.ErrDelivery):
		logger.Error().Err(err).Msg("mail delivery failed")
		Fail(w, http.StatusBadGateway, "failed to deliver email")
	default:
		logger.Error().Err(err).Msg("unhandled error")
		Fail(w, http.StatusInternalServerError, "internal server error")
	}
}

// PDF streams a rendered artifact as a file download.
func PDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
