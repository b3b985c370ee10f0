package card

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/biglittlethings/paperwork/internal/barcode"
	"github.com/biglittlethings/paperwork/internal/respond"
)

type printBody struct {
	Print PrintRequest `json:"print" validate:"required"`
}

type downloadBody struct {
	Download DownloadRequest `json:"download" validate:"required"`
}

// Handler exposes the greeting-card entry points over HTTP.
type Handler struct {
	assembler *Assembler
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewHandler(assembler *Assembler, validate *validator.Validate, logger zerolog.Logger) *Handler {
	return &Handler{assembler: assembler, validate: validate, logger: logger}
}

// Print handles POST /greeting-cards/print.
func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	var body printBody
	if !h.decode(w, r, &body) {
		return
	}
	req := body.Print

	if fields := validatePrint(req); len(fields) > 0 {
		respond.FieldErrors(w, fields)
		return
	}

	if err := h.assembler.Print(r.Context(), req); err != nil {
		respond.Error(w, err, h.logger)
		return
	}
	respond.Success(w, http.StatusOK, map[string]any{
		"greetingCard": map[string]string{"message": "Greeting card email sent successfully"},
	})
}

// Download handles POST /greeting-cards/download.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var body downloadBody
	if !h.decode(w, r, &body) {
		return
	}
	req := body.Download

	if fields := validateDownload(req); len(fields) > 0 {
		respond.FieldErrors(w, fields)
		return
	}

	artifact, err := h.assembler.Download(r.Context(), req)
	if err != nil {
		respond.Error(w, err, h.logger)
		return
	}
	respond.PDF(w, artifact.Name, artifact.Data)
}

// validatePrint covers the cross-field rules struct tags cannot express.
func validatePrint(req PrintRequest) []map[string]string {
	var fields []map[string]string

	if req.Email.Subject == "" {
		fields = append(fields, map[string]string{"subject": "subject is required"})
	}
	if req.Email.Text == "" {
		fields = append(fields, map[string]string{"text": "text is required"})
	}

	sides := req.ExportSides
	if sides == "" {
		sides = SideBoth
	}
	if sides.wantsFront() && req.ImageURL == "" {
		fields = append(fields, map[string]string{"imageUrl": "imageUrl is required for the front surface"})
	}
	if sides.wantsBack() && req.HTMLText == "" {
		fields = append(fields, map[string]string{"htmlText": "htmlText is required for the back surface"})
	}
	fields = append(fields, validateBarcode(req.BarcodeValue, req.BarcodeFormat)...)
	return fields
}

func validateDownload(req DownloadRequest) []map[string]string {
	var fields []map[string]string

	side := req.ExportSide
	if side == "" {
		side = SideBack
	}
	if side == SideFront && req.ImageURL == "" {
		fields = append(fields, map[string]string{"imageUrl": "imageUrl is required for the front surface"})
	}
	if side == SideBack && req.HTMLText == "" {
		fields = append(fields, map[string]string{"htmlText": "htmlText is required for the back surface"})
	}
	fields = append(fields, validateBarcode(req.BarcodeValue, req.BarcodeFormat)...)
	return fields
}

// validateBarcode enforces the per-symbology length contract at the
// boundary; the renderer re-checks it defensively later.
func validateBarcode(value, formatName string) []map[string]string {
	if value == "" {
		return nil
	}
	if formatName == "" {
		return []map[string]string{{"barcodeFormat": "barcodeFormat is required when barcodeValue is set"}}
	}
	if err := barcode.ValidateLength(value, barcode.Format(formatName)); err != nil {
		return []map[string]string{{"barcodeValue": err.Error()}}
	}
	return nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, body any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if err := h.validate.Struct(body); err != nil {
		respond.Invalid(w, err)
		return false
	}
	return true
}
