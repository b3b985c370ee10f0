package document

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/biglittlethings/paperwork/internal/mail"
	"github.com/biglittlethings/paperwork/internal/respond"
)

type downloadRequest struct {
	Download Fields `json:"download" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=invoice orderConfirmation packingSlip"`
}

type emailRequest struct {
	Download Fields        `json:"download" validate:"required"`
	Email    mail.Envelope `json:"email" validate:"required"`
	Type     string        `json:"type" validate:"required,oneof=invoice orderConfirmation packingSlip"`
}

type invoiceDownloadRequest struct {
	Download Fields `json:"download" validate:"required"`
}

// Handler exposes the document composition entry points over HTTP.
type Handler struct {
	assembler *Assembler
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewHandler(assembler *Assembler, validate *validator.Validate, logger zerolog.Logger) *Handler {
	return &Handler{assembler: assembler, validate: validate, logger: logger}
}

// Download handles POST /documents/download.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if !h.decode(w, r, &req) {
		return
	}
	t, _ := ParseType(req.Type)

	artifact, err := h.assembler.Download(r.Context(), req.Download, t)
	if err != nil {
		respond.Error(w, err, h.logger)
		return
	}
	respond.PDF(w, artifact.Name, artifact.Data)
}

// Email handles POST /documents/email.
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !h.decode(w, r, &req) {
		return
	}
	t, _ := ParseType(req.Type)

	if err := h.assembler.Email(r.Context(), req.Download, t, req.Email); err != nil {
		respond.Error(w, err, h.logger)
		return
	}
	respond.Success(w, http.StatusOK, map[string]any{
		"greetingCard": map[string]string{"message": "Document email sent successfully"},
	})
}

// DownloadInvoice handles POST /invoices/download. The endpoint predates
// the unified document pipeline; it runs the same composition with the
// type fixed to invoice.
func (h *Handler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceDownloadRequest
	if !h.decode(w, r, &req) {
		return
	}

	artifact, err := h.assembler.Download(r.Context(), req.Download, TypeInvoice)
	if err != nil {
		respond.Error(w, err, h.logger)
		return
	}
	respond.PDF(w, artifact.Name, artifact.Data)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Invalid(w, err)
		return false
	}
	return true
}
