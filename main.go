package main

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/project-catalyst/catalyst-api/internal/ai"
	"github.com/project-catalyst/catalyst-api/internal/config"
	"github.com/project-catalyst/catalyst-api/internal/gelf"
	"github.com/project-catalyst/catalyst-api/internal/handler"
	"github.com/project-catalyst/catalyst-api/internal/mail"
	"github.com/project-catalyst/catalyst-api/internal/router"
	"github.com/project-catalyst/catalyst-api/internal/service"
	"github.com/project-catalyst/catalyst-api/internal/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Provider clients. The AI client stays nil without a credential so the
	// AI endpoints fail closed; submissions are unaffected.
	var analyzer handler.Analyzer
	if cfg.GeminiAPIKey != "" {
		analyzer = ai.NewClient(cfg.GeminiAPIKey)
	}
	appender := sheets.NewAppender(cfg)
	dispatcher := mail.NewDispatcher(cfg)

	// Services
	subSvc := service.NewSubmissionService(appender, dispatcher)

	// Handlers
	aiH := handler.NewAIHandler(analyzer)
	subH := handler.NewSubmissionHandler(subSvc, cfg.Production())

	r := router.New(cfg.AllowedOrigins, aiH, subH)

	log.Printf("catalyst-api listening on %s (env: %s)", cfg.Addr(), cfg.AppEnv)
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		log.Fatalf("server: %v", err)
	}
}
