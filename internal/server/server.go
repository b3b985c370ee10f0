// Package server wires the HTTP routes onto a chi router with request
// logging, panic recovery, and the shared response envelope for unmatched
// routes.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/biglittlethings/paperwork/internal/auth"
	"github.com/biglittlethings/paperwork/internal/card"
	"github.com/biglittlethings/paperwork/internal/contact"
	"github.com/biglittlethings/paperwork/internal/document"
	"github.com/biglittlethings/paperwork/internal/respond"
)

// Deps collects the composed handlers the router mounts.
type Deps struct {
	Documents  *document.Handler
	Cards      *card.Handler
	Contact    *contact.Handler
	AuthSecret string
	Logger     zerolog.Logger
}

// New builds the full route tree. Document downloads sit behind the shared
// secret; email and card routes are open, matching the upstream shop
// integration.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", welcome)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.AuthSecret))
			r.Post("/documents/download", deps.Documents.Download)
			r.Post("/invoices/download", deps.Documents.DownloadInvoice)
		})
		r.Post("/documents/email", deps.Documents.Email)
		r.Post("/greeting-cards/print", deps.Cards.Print)
		r.Post("/greeting-cards/download", deps.Cards.Download)
		r.Post("/send", deps.Contact.Send)
	})

	fs := http.StripPrefix("/public/", http.FileServer(http.Dir("public")))
	r.Get("/public/*", fs.ServeHTTP)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Fail(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func welcome(w http.ResponseWriter, _ *http.Request) {
	respond.Success(w, http.StatusOK, map[string]any{
		"message": "paperwork service",
	})
}
