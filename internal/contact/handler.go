// Package contact forwards website contact-form submissions to the
// configured inbox through the mail dispatcher.
package contact

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/biglittlethings/paperwork/internal/mail"
	"github.com/biglittlethings/paperwork/internal/respond"
)

type sendRequest struct {
	Name    string `json:"name" validate:"required,max=64"`
	Email   string `json:"email" validate:"required,email,max=64"`
	Subject string `json:"subject" validate:"required,max=64"`
	Message string `json:"message" validate:"required,max=256"`
}

type sendBody struct {
	Data sendRequest `json:"data" validate:"required"`
}

// Handler exposes the contact-form entry point over HTTP.
type Handler struct {
	dispatcher mail.Dispatcher
	inbox      string
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewHandler wires the dispatcher to the inbox address that receives
// contact submissions.
func NewHandler(dispatcher mail.Dispatcher, inbox string, validate *validator.Validate, logger zerolog.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, inbox: inbox, validate: validate, logger: logger}
}

// Send handles POST /send. The visitor becomes the sender so the inbox can
// reply directly.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var body sendBody
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		respond.Invalid(w, err)
		return
	}
	req := body.Data

	env := mail.Envelope{
		To:      mail.AddressList{h.inbox},
		From:    mail.Sender{Email: strings.ToLower(req.Email), Name: req.Name},
		Subject: req.Subject,
		Text:    req.Message + "\n\n",
	}
	if err := h.dispatcher.Send(r.Context(), env, nil); err != nil {
		respond.Error(w, err, h.logger)
		return
	}
	respond.Success(w, http.StatusOK, map[string]any{
		"info": "Contact email sent successfully",
	})
}
