package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/biglittlethings/paperwork/internal/card"
	"github.com/biglittlethings/paperwork/internal/compositor"
	"github.com/biglittlethings/paperwork/internal/config"
	"github.com/biglittlethings/paperwork/internal/contact"
	"github.com/biglittlethings/paperwork/internal/document"
	"github.com/biglittlethings/paperwork/internal/mail"
	"github.com/biglittlethings/paperwork/internal/render"
	"github.com/biglittlethings/paperwork/internal/server"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	renderer := render.New(render.Config{
		ChromiumPath:  cfg.ChromiumPath,
		Timeout:       cfg.RenderTimeout,
		MaxConcurrent: cfg.MaxRenders,
	})
	comp := compositor.New(compositor.Config{FetchTimeout: cfg.ImageFetchTimeout})
	dispatcher := mail.NewSendGrid(cfg.SendGridAPIKey)
	validate := validator.New()

	documents := document.NewHandler(
		document.NewAssembler(renderer, dispatcher, cfg.StylesheetURL),
		validate, log.Logger,
	)
	cards := card.NewHandler(
		card.NewAssembler(renderer, comp, dispatcher, log.Logger),
		validate, log.Logger,
	)
	contactForm := contact.NewHandler(dispatcher, cfg.ContactEmail, validate, log.Logger)

	handler := server.New(server.Deps{
		Documents:  documents,
		Cards:      cards,
		Contact:    contactForm,
		AuthSecret: cfg.AuthSecret,
		Logger:     log.Logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("paperwork api listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
